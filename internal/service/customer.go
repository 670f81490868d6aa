package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"salescrm/internal/auth"
	"salescrm/internal/cache"
	"salescrm/internal/model"
	"salescrm/internal/policy"
	"salescrm/internal/repository"
	"salescrm/pkg/db/transactor"
)

const customerPageSize = 20

// NewCustomerInput carries the attributes of a customer to be created
type NewCustomerInput struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         *string
	Address       *string
	Source        *string
	Remark        *string
	// IntoPool creates the customer unowned, straight into the pool.
	// Admin-only import path.
	IntoPool bool
}

// UpdateCustomerInput carries the mutable attributes of a customer
type UpdateCustomerInput struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         *string
	Address       *string
	Source        *string
	Remark        *string
}

// CustomerService is business logic around customer records themselves;
// pool transitions live in PoolService.
type CustomerService interface {
	Create(ctx context.Context, in NewCustomerInput, actor auth.Identity, at time.Time) (*model.Customer, error)
	FindByID(ctx context.Context, id string, actor auth.Identity) (*model.Customer, error)
	Page(ctx context.Context, actor auth.Identity, search string, page int) (*model.CustomerPage, error)
	Update(ctx context.Context, in UpdateCustomerInput, actor auth.Identity) (*model.Customer, error)
	DeleteByID(ctx context.Context, id string, actor auth.Identity) error
}

type customerService struct {
	trx           transactor.Transactor
	customerRps   repository.CustomerRepository
	userRps       repository.UserRepository
	logRps        repository.SystemLogRepository
	customerCache cache.CustomerCacheRepository
}

// NewCustomerService builds new CustomerService
func NewCustomerService(
	trx transactor.Transactor,
	customerRps repository.CustomerRepository,
	userRps repository.UserRepository,
	logRps repository.SystemLogRepository,
	customerCache cache.CustomerCacheRepository,
) CustomerService {
	return &customerService{
		trx:           trx,
		customerRps:   customerRps,
		userRps:       userRps,
		logRps:        logRps,
		customerCache: customerCache,
	}
}

func (s *customerService) Create(ctx context.Context, in NewCustomerInput, actor auth.Identity, at time.Time) (*model.Customer, error) {
	if in.IntoPool && actor.Role != model.RoleAdmin {
		return nil, echo.NewHTTPError(http.StatusForbidden, "only admins may import customers into the pool")
	}

	existing, err := s.customerRps.FindByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "phone number already exists")
	}

	customer := &model.Customer{
		ID:            uuid.NewString(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Source:        in.Source,
		Remark:        in.Remark,
		CreatedAt:     at,
		UpdatedAt:     at,
	}

	if in.IntoPool {
		customer.Status = model.CustomerStatusPool
	} else {
		ownerID := actor.ID
		followUpAt := at
		customer.Status = model.CustomerStatusAssigned
		customer.OwnerID = &ownerID
		customer.LastFollowUpAt = &followUpAt
	}

	err = s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.customerRps.Create(ctx, customer); err != nil {
			return err
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionCreateCustomer,
			Target:    "Customer",
			TargetID:  &customer.ID,
			Detail:    fmt.Sprintf("created customer: %s", customer.Name),
			CreatedAt: at,
		})
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *customerService) FindByID(ctx context.Context, id string, actor auth.Identity) (*model.Customer, error) {
	customer, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cached := customer != nil
	if !cached {
		customer, err = s.customerRps.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if customer == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	allowed, err := s.allowsOnCustomer(ctx, actor, policy.ActionViewCustomer, customer)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, echo.NewHTTPError(http.StatusForbidden, "no permission to view this customer")
	}

	if !cached {
		if err := s.customerCache.Create(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

func (s *customerService) Page(ctx context.Context, actor auth.Identity, search string, page int) (*model.CustomerPage, error) {
	if page < 1 {
		page = 1
	}

	filter := repository.CustomerFilter{
		Status: model.CustomerStatusAssigned,
		Search: search,
		Offset: (page - 1) * customerPageSize,
		Limit:  customerPageSize,
	}

	switch actor.Role {
	case model.RoleSales:
		ownerID := actor.ID
		filter.OwnerID = &ownerID
	case model.RoleManager:
		if actor.DepartmentID != nil {
			filter.DepartmentID = actor.DepartmentID
		} else {
			ownerID := actor.ID
			filter.OwnerID = &ownerID
		}
	}

	customers, total, err := s.customerRps.FindPage(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &model.CustomerPage{
		Customers:   customers,
		Total:       total,
		PageSize:    customerPageSize,
		CurrentPage: page,
		TotalPages:  (total + customerPageSize - 1) / customerPageSize,
	}, nil
}

func (s *customerService) Update(ctx context.Context, in UpdateCustomerInput, actor auth.Identity) (*model.Customer, error) {
	customer, err := s.customerRps.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	if !policy.Allows(actor, policy.ActionUpdateCustomer, policy.CustomerResource{Customer: customer}) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "no permission to operate on this customer")
	}

	if in.Phone != customer.Phone {
		other, err := s.customerRps.FindByPhone(ctx, in.Phone)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != customer.ID {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "phone number already exists")
		}
	}

	customer.Name = in.Name
	customer.ContactPerson = in.ContactPerson
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.Address = in.Address
	customer.Source = in.Source
	customer.Remark = in.Remark

	err = s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.customerRps.Update(ctx, customer); err != nil {
			return err
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionUpdateCustomer,
			Target:    "Customer",
			TargetID:  &customer.ID,
			Detail:    fmt.Sprintf("updated customer: %s", customer.Name),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.customerCache.DeleteByID(ctx, customer.ID); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id string, actor auth.Identity) error {
	customer, err := s.customerRps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	if !policy.Allows(actor, policy.ActionDeleteCustomer, policy.CustomerResource{Customer: customer}) {
		return echo.NewHTTPError(http.StatusForbidden, "only admins may delete customers")
	}

	err = s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.customerRps.DeleteByID(ctx, id); err != nil {
			return err
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionDeleteCustomer,
			Target:    "Customer",
			TargetID:  &id,
			Detail:    fmt.Sprintf("deleted customer: %s", customer.Name),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return err
	}

	return s.customerCache.DeleteByID(ctx, id)
}

// allowsOnCustomer resolves the owner's department before evaluating the
// policy, which manager visibility depends on.
func (s *customerService) allowsOnCustomer(ctx context.Context, actor auth.Identity, action policy.Action, customer *model.Customer) (bool, error) {
	res := policy.CustomerResource{Customer: customer}

	if customer.OwnerID != nil && actor.Role == model.RoleManager {
		owner, err := s.userRps.FindByID(ctx, *customer.OwnerID)
		if err != nil {
			return false, err
		}
		if owner != nil {
			res.OwnerDepartmentID = owner.DepartmentID
		}
	}

	return policy.Allows(actor, action, res), nil
}
