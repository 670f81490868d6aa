package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"salescrm/internal/middleware"
	"salescrm/internal/service"
)

// SettingsHTTPHandler is http handler for system settings endpoint
type SettingsHTTPHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHTTPHandler builds new SettingsHTTPHandler
func NewSettingsHTTPHandler(settingsSvc service.SettingsService) *SettingsHTTPHandler {
	return &SettingsHTTPHandler{settingsSvc: settingsSvc}
}

// Get returns all configuration pairs, admin only
func (h *SettingsHTTPHandler) Get(c echo.Context) error {
	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	settings, err := h.settingsSvc.FindAll(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Post upserts the provided configuration pairs, admin only.
// Values arrive as arbitrary JSON scalars and are stored as strings.
func (h *SettingsHTTPHandler) Post(c echo.Context) error {
	payload := make(map[string]any)
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	values := make(map[string]string, len(payload))
	for key, value := range payload {
		if s, ok := value.(string); ok {
			values[key] = s
			continue
		}
		values[key] = fmt.Sprint(value)
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	if err := h.settingsSvc.Update(c.Request().Context(), values, actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &operationResult{Success: true})
}
