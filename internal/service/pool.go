package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
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

const poolPageSize = 20

// ClaimQuota is the actor's daily claim usage next to the configured limit
type ClaimQuota struct {
	Claimed int `json:"claimed"`
	Limit   int `json:"limit"`
}

// PoolService owns every transition between the shared customer pool and
// individual ownership: claiming, returning and the timed recycle sweep.
type PoolService interface {
	Claim(ctx context.Context, customerID string, actor auth.Identity, at time.Time) error
	Return(ctx context.Context, customerID string, reason string, actor auth.Identity) error
	Page(ctx context.Context, search string, page int) (*model.CustomerPage, error)
	Quota(ctx context.Context, userID string, at time.Time) (*ClaimQuota, error)
	RecycleStale(ctx context.Context, at time.Time) (int, error)
}

type poolService struct {
	trx           transactor.Transactor
	customerRps   repository.CustomerRepository
	claimRps      repository.ClaimRecordRepository
	configRps     repository.SystemConfigRepository
	logRps        repository.SystemLogRepository
	customerCache cache.CustomerCacheRepository
}

// NewPoolService builds new PoolService
func NewPoolService(
	trx transactor.Transactor,
	customerRps repository.CustomerRepository,
	claimRps repository.ClaimRecordRepository,
	configRps repository.SystemConfigRepository,
	logRps repository.SystemLogRepository,
	customerCache cache.CustomerCacheRepository,
) PoolService {
	return &poolService{
		trx:           trx,
		customerRps:   customerRps,
		claimRps:      claimRps,
		configRps:     configRps,
		logRps:        logRps,
		customerCache: customerCache,
	}
}

// Claim takes ownership of a pooled customer for the actor. The quota
// check, the conditional status flip, the claim record and the audit
// entry all happen in one transaction, so either every effect is
// persisted or none is. The status condition on the update is the
// concurrency guard: of two simultaneous claims only one flips the row,
// the other sees zero affected rows and fails as already claimed.
func (s *poolService) Claim(ctx context.Context, customerID string, actor auth.Identity, at time.Time) error {
	err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		limit, err := s.intConfig(ctx, model.ConfigKeyDailyClaimLimit, model.DefaultDailyClaimLimit)
		if err != nil {
			return err
		}

		claimed, err := s.claimRps.CountByUserSince(ctx, actor.ID, startOfDay(at))
		if err != nil {
			return err
		}
		if claimed >= limit {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("daily claim limit of %d reached", limit))
		}

		customer, err := s.customerRps.FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		if customer.Status != model.CustomerStatusPool {
			return echo.NewHTTPError(http.StatusBadRequest, "customer has already been claimed")
		}

		assigned, err := s.customerRps.AssignFromPool(ctx, customerID, actor.ID, at)
		if err != nil {
			return err
		}
		if !assigned {
			return echo.NewHTTPError(http.StatusBadRequest, "customer has already been claimed")
		}

		record := &model.ClaimRecord{
			ID:         uuid.NewString(),
			UserID:     actor.ID,
			CustomerID: customerID,
			ClaimedAt:  at,
		}
		if err := s.claimRps.Create(ctx, record); err != nil {
			return err
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionClaimCustomer,
			Target:    "Customer",
			TargetID:  &customerID,
			Detail:    fmt.Sprintf("claimed customer from pool: %s", customer.Name),
			CreatedAt: at,
		})
	})
	if err != nil {
		return err
	}

	return s.customerCache.DeleteByID(ctx, customerID)
}

// Return puts an owned customer back into the pool with the given
// reason. Only the current owner or an admin may return a customer.
func (s *poolService) Return(ctx context.Context, customerID string, reason string, actor auth.Identity) error {
	err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRps.FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}

		if !policy.Allows(actor, policy.ActionReturnCustomer, policy.CustomerResource{Customer: customer}) {
			return echo.NewHTTPError(http.StatusForbidden, "no permission to operate on this customer")
		}

		returned, err := s.customerRps.ReturnToPool(ctx, customerID, reason)
		if err != nil {
			return err
		}
		if !returned {
			return echo.NewHTTPError(http.StatusBadRequest, "customer is already in the pool")
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionReturnCustomer,
			Target:    "Customer",
			TargetID:  &customerID,
			Detail:    fmt.Sprintf("returned customer to pool: %s, reason: %s", customer.Name, reason),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return err
	}

	return s.customerCache.DeleteByID(ctx, customerID)
}

func (s *poolService) Page(ctx context.Context, search string, page int) (*model.CustomerPage, error) {
	if page < 1 {
		page = 1
	}

	customers, total, err := s.customerRps.FindPage(ctx, repository.CustomerFilter{
		Status: model.CustomerStatusPool,
		Search: search,
		Offset: (page - 1) * poolPageSize,
		Limit:  poolPageSize,
	})
	if err != nil {
		return nil, err
	}

	return &model.CustomerPage{
		Customers:   customers,
		Total:       total,
		PageSize:    poolPageSize,
		CurrentPage: page,
		TotalPages:  (total + poolPageSize - 1) / poolPageSize,
	}, nil
}

// Quota recomputes today's claim usage from the claim records on every
// call. There is no stored counter to drift or to reset.
func (s *poolService) Quota(ctx context.Context, userID string, at time.Time) (*ClaimQuota, error) {
	limit, err := s.intConfig(ctx, model.ConfigKeyDailyClaimLimit, model.DefaultDailyClaimLimit)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claimRps.CountByUserSince(ctx, userID, startOfDay(at))
	if err != nil {
		return nil, err
	}

	return &ClaimQuota{Claimed: claimed, Limit: limit}, nil
}

// RecycleStale returns every assigned customer whose last follow-up is
// older than the configured number of days back to the pool. Each
// customer is recycled in its own transaction so one failure does not
// undo the rest of the sweep.
func (s *poolService) RecycleStale(ctx context.Context, at time.Time) (int, error) {
	days, err := s.intConfig(ctx, model.ConfigKeyPoolRecycleDays, model.DefaultPoolRecycleDays)
	if err != nil {
		return 0, err
	}

	cutoff := at.AddDate(0, 0, -days)
	stale, err := s.customerRps.FindAssignedNotFollowedSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	reason := fmt.Sprintf("recycled after %d days without follow-up", days)

	recycled := 0
	for _, customer := range stale {
		customerID := customer.ID
		err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
			returned, err := s.customerRps.ReturnToPool(ctx, customerID, reason)
			if err != nil {
				return err
			}
			if !returned {
				// someone returned it since the sweep query ran
				return nil
			}

			recycled++
			return s.logRps.Create(ctx, &model.SystemLog{
				ID:        uuid.NewString(),
				Action:    model.LogActionRecycleCustomer,
				Target:    "Customer",
				TargetID:  &customerID,
				Detail:    fmt.Sprintf("recycled customer to pool: %s", customer.Name),
				CreatedAt: at,
			})
		})
		if err != nil {
			return recycled, err
		}

		if err := s.customerCache.DeleteByID(ctx, customerID); err != nil {
			return recycled, err
		}
	}

	return recycled, nil
}

func (s *poolService) intConfig(ctx context.Context, key string, fallback int) (int, error) {
	cfg, err := s.configRps.FindByKey(ctx, key)
	if err != nil {
		return 0, err
	}
	if cfg == nil {
		return fallback, nil
	}

	value, err := strconv.Atoi(cfg.Value)
	if err != nil {
		return fallback, nil
	}
	return value, nil
}

// startOfDay is local midnight, not a rolling 24h window
func startOfDay(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
}
