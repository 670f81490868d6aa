package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"salescrm/internal/middleware"
	"salescrm/internal/model"
	"salescrm/internal/service"
)

type newFollowUp struct {
	CustomerID     string     `json:"customerId" validate:"required,uuid"`
	Content        string     `json:"content" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=PHONE WECHAT VISIT EMAIL OTHER"`
	NextFollowUpAt *time.Time `json:"nextFollowUpAt"`
}

// FollowUpHTTPHandler is http handler for follow-up endpoint
type FollowUpHTTPHandler struct {
	followUpSvc service.FollowUpService
}

// NewFollowUpHTTPHandler builds new FollowUpHTTPHandler
func NewFollowUpHTTPHandler(followUpSvc service.FollowUpService) *FollowUpHTTPHandler {
	return &FollowUpHTTPHandler{followUpSvc: followUpSvc}
}

// Post records a follow-up and advances the customer's last-follow-up time
func (h *FollowUpHTTPHandler) Post(c echo.Context) error {
	var nf newFollowUp
	if err := c.Bind(&nf); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nf); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	followUp, err := h.followUpSvc.Create(c.Request().Context(), service.NewFollowUpInput{
		CustomerID:     nf.CustomerID,
		Content:        nf.Content,
		Type:           model.FollowUpType(nf.Type),
		NextFollowUpAt: nf.NextFollowUpAt,
	}, actor, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, followUp)
}

// GetByCustomer lists a customer's follow-ups, newest first
func (h *FollowUpHTTPHandler) GetByCustomer(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	followUps, err := h.followUpSvc.FindByCustomerID(c.Request().Context(), id, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followUps)
}
