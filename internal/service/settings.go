package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"salescrm/internal/auth"
	"salescrm/internal/model"
	"salescrm/internal/policy"
	"salescrm/internal/repository"
	"salescrm/pkg/db/transactor"
)

// SettingsService reads and updates tunable system parameters
type SettingsService interface {
	FindAll(ctx context.Context, actor auth.Identity) ([]*model.SystemConfig, error)
	Update(ctx context.Context, values map[string]string, actor auth.Identity) error
}

type settingsService struct {
	trx       transactor.Transactor
	configRps repository.SystemConfigRepository
	logRps    repository.SystemLogRepository
}

// NewSettingsService builds new SettingsService
func NewSettingsService(
	trx transactor.Transactor,
	configRps repository.SystemConfigRepository,
	logRps repository.SystemLogRepository,
) SettingsService {
	return &settingsService{trx: trx, configRps: configRps, logRps: logRps}
}

func (s *settingsService) FindAll(ctx context.Context, actor auth.Identity) ([]*model.SystemConfig, error) {
	if !policy.Allows(actor, policy.ActionManageSettings, policy.CustomerResource{}) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "only admins may manage settings")
	}
	return s.configRps.FindAll(ctx)
}

func (s *settingsService) Update(ctx context.Context, values map[string]string, actor auth.Identity) error {
	if !policy.Allows(actor, policy.ActionManageSettings, policy.CustomerResource{}) {
		return echo.NewHTTPError(http.StatusForbidden, "only admins may manage settings")
	}

	detail, err := json.Marshal(values)
	if err != nil {
		return err
	}

	return s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		for key, value := range values {
			if err := s.configRps.Upsert(ctx, key, value); err != nil {
				return err
			}
		}

		return s.logRps.Create(ctx, &model.SystemLog{
			ID:        uuid.NewString(),
			UserID:    &actor.ID,
			Action:    model.LogActionUpdateSettings,
			Target:    "SystemConfig",
			Detail:    "updated settings: " + string(detail),
			CreatedAt: time.Now(),
		})
	})
}
