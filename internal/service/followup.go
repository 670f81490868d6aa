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

const followUpDetailLimit = 50

// NewFollowUpInput carries the attributes of a follow-up to be recorded
type NewFollowUpInput struct {
	CustomerID     string
	Content        string
	Type           model.FollowUpType
	NextFollowUpAt *time.Time
}

// FollowUpService records follow-ups and keeps the customer's
// last-follow-up timestamp in step with them.
type FollowUpService interface {
	Create(ctx context.Context, in NewFollowUpInput, actor auth.Identity, at time.Time) (*model.FollowUp, error)
	FindByCustomerID(ctx context.Context, customerID string, actor auth.Identity) ([]*model.FollowUp, error)
}

type followUpService struct {
	trx           transactor.Transactor
	followUpRps   repository.FollowUpRepository
	customerRps   repository.CustomerRepository
	logRps        repository.SystemLogRepository
	customerCache cache.CustomerCacheRepository
}

// NewFollowUpService builds new FollowUpService
func NewFollowUpService(
	trx transactor.Transactor,
	followUpRps repository.FollowUpRepository,
	customerRps repository.CustomerRepository,
	logRps repository.SystemLogRepository,
	customerCache cache.CustomerCacheRepository,
) FollowUpService {
	return &followUpService{
		trx:           trx,
		followUpRps:   followUpRps,
		customerRps:   customerRps,
		logRps:        logRps,
		customerCache: customerCache,
	}
}

func (s *followUpService) Create(ctx context.Context, in NewFollowUpInput, actor auth.Identity, at time.Time) (*model.FollowUp, error) {
	customer, err := s.customerRps.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	if !policy.Allows(actor, policy.ActionFollowUpCustomer, policy.CustomerResource{Customer: customer}) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "no permission to operate on this customer")
	}

	followUp := &model.FollowUp{
		ID:             uuid.NewString(),
		CustomerID:     in.CustomerID,
		UserID:         actor.ID,
		Content:        in.Content,
		Type:           in.Type,
		NextFollowUpAt: in.NextFollowUpAt,
		CreatedAt:      at,
	}

	err = s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.followUpRps.Create(ctx, followUp); err != nil {
			return err
		}

		if err := s.customerRps.TouchLastFollowUp(ctx, in.CustomerID, at); err != nil {
			return err
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionCreateFollowUp,
			Target:    "FollowUp",
			TargetID:  &in.CustomerID,
			Detail:    fmt.Sprintf("added follow-up: %s", truncate(in.Content, followUpDetailLimit)),
			CreatedAt: at,
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.customerCache.DeleteByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	return followUp, nil
}

func (s *followUpService) FindByCustomerID(ctx context.Context, customerID string, actor auth.Identity) ([]*model.FollowUp, error) {
	customer, err := s.customerRps.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	if !policy.Allows(actor, policy.ActionViewCustomer, policy.CustomerResource{Customer: customer}) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "no permission to view this customer")
	}

	return s.followUpRps.FindByCustomerID(ctx, customerID)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
