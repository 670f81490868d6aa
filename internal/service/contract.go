package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"salescrm/internal/auth"
	"salescrm/internal/model"
	"salescrm/internal/repository"
	"salescrm/pkg/db/transactor"
)

const serialNumberPrefix = "CTR"

// NewContractInput carries the attributes of a contract to be signed
type NewContractInput struct {
	CustomerID string
	Amount     decimal.Decimal
	SignDate   time.Time
	Remark     *string
}

// NewPaymentInput carries a single received payment
type NewPaymentInput struct {
	ContractID  string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Remark      *string
}

// ContractService signs contracts and books payments against them
type ContractService interface {
	Create(ctx context.Context, in NewContractInput, actor auth.Identity, at time.Time) (*model.Contract, error)
	AddPayment(ctx context.Context, in NewPaymentInput, actor auth.Identity, at time.Time) (*model.Payment, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*model.Contract, error)
	PaymentsByContractID(ctx context.Context, contractID string) ([]*model.Payment, error)
}

type contractService struct {
	trx         transactor.Transactor
	contractRps repository.ContractRepository
	paymentRps  repository.PaymentRepository
	customerRps repository.CustomerRepository
	logRps      repository.SystemLogRepository
}

// NewContractService builds new ContractService
func NewContractService(
	trx transactor.Transactor,
	contractRps repository.ContractRepository,
	paymentRps repository.PaymentRepository,
	customerRps repository.CustomerRepository,
	logRps repository.SystemLogRepository,
) ContractService {
	return &contractService{
		trx:         trx,
		contractRps: contractRps,
		paymentRps:  paymentRps,
		customerRps: customerRps,
		logRps:      logRps,
	}
}

// Create signs a new contract. The serial number is derived from today's
// highest existing serial inside the same transaction as the insert, so
// two concurrent signings cannot draw the same sequence.
func (s *contractService) Create(ctx context.Context, in NewContractInput, actor auth.Identity, at time.Time) (*model.Contract, error) {
	customer, err := s.customerRps.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	contract := &model.Contract{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		SignDate:   in.SignDate,
		Status:     model.ContractStatusExecuting,
		Remark:     in.Remark,
		CreatedAt:  at,
	}

	err = s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		serial, err := s.nextSerialNumber(ctx, at)
		if err != nil {
			return err
		}
		contract.SerialNumber = serial

		if err := s.contractRps.Create(ctx, contract); err != nil {
			return err
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionCreateContract,
			Target:    "Contract",
			TargetID:  &contract.ID,
			Detail:    fmt.Sprintf("created contract: %s, amount: %s", contract.SerialNumber, in.Amount),
			CreatedAt: at,
		})
	})
	if err != nil {
		return nil, err
	}

	return contract, nil
}

// AddPayment books a payment and completes the contract once the paid
// total covers its amount.
func (s *contractService) AddPayment(ctx context.Context, in NewPaymentInput, actor auth.Identity, at time.Time) (*model.Payment, error) {
	contract, err := s.contractRps.FindByID(ctx, in.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "contract not found")
	}
	if contract.Status == model.ContractStatusCancelled {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "contract is cancelled")
	}

	payment := &model.Payment{
		ID:          uuid.NewString(),
		ContractID:  in.ContractID,
		Amount:      in.Amount,
		PaymentDate: in.PaymentDate,
		Remark:      in.Remark,
		CreatedAt:   at,
	}

	err = s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.paymentRps.Create(ctx, payment); err != nil {
			return err
		}

		total, err := s.paymentRps.TotalByContractID(ctx, in.ContractID)
		if err != nil {
			return err
		}
		if total.GreaterThanOrEqual(contract.Amount) {
			if err := s.contractRps.UpdateStatus(ctx, contract.ID, model.ContractStatusCompleted); err != nil {
				return err
			}
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionCreatePayment,
			Target:    "Payment",
			TargetID:  &payment.ID,
			Detail:    fmt.Sprintf("received payment: %s for contract %s", in.Amount, contract.SerialNumber),
			CreatedAt: at,
		})
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// FindByCustomerID lists a customer's contracts with their paid totals
// filled in, so the remaining balance is computable per contract.
func (s *contractService) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Contract, error) {
	contracts, err := s.contractRps.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	for _, contract := range contracts {
		total, err := s.paymentRps.TotalByContractID(ctx, contract.ID)
		if err != nil {
			return nil, err
		}
		contract.PaidAmount = total
	}
	return contracts, nil
}

func (s *contractService) PaymentsByContractID(ctx context.Context, contractID string) ([]*model.Payment, error) {
	return s.paymentRps.FindByContractID(ctx, contractID)
}

func (s *contractService) nextSerialNumber(ctx context.Context, at time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", serialNumberPrefix, at.Format("20060102"))

	last, err := s.contractRps.LastSerialNumber(ctx, prefix)
	if err != nil {
		return "", err
	}

	sequence := 1
	if last != "" {
		if _, err := fmt.Sscanf(last[len(prefix):], "%d", &sequence); err == nil {
			sequence++
		}
	}

	return fmt.Sprintf("%s%03d", prefix, sequence), nil
}
