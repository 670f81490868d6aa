package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"salescrm/internal/middleware"
	"salescrm/internal/model"
	"salescrm/internal/service"
)

type claimCustomer struct {
	CustomerID string `json:"customerId" validate:"required,uuid"`
}

type returnCustomer struct {
	CustomerID string `json:"customerId" validate:"required,uuid"`
	Reason     string `json:"reason" validate:"required"`
}

type operationResult struct {
	Success bool `json:"success"`
}

type poolPage struct {
	*model.CustomerPage
	Quota *service.ClaimQuota `json:"quota"`
}

// PoolHTTPHandler is http handler for the customer pool endpoint
type PoolHTTPHandler struct {
	poolSvc service.PoolService
}

// NewPoolHTTPHandler builds new PoolHTTPHandler
func NewPoolHTTPHandler(poolSvc service.PoolService) *PoolHTTPHandler {
	return &PoolHTTPHandler{poolSvc: poolSvc}
}

// GetPage returns a page of pooled customers with the actor's quota snapshot
func (h *PoolHTTPHandler) GetPage(c echo.Context) error {
	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	customers, err := h.poolSvc.Page(ctx, c.QueryParam("search"), page)
	if err != nil {
		return err
	}

	quota, err := h.poolSvc.Quota(ctx, actor.ID, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &poolPage{CustomerPage: customers, Quota: quota})
}

// Claim takes ownership of a pooled customer for the actor
func (h *PoolHTTPHandler) Claim(c echo.Context) error {
	var cc claimCustomer
	if err := c.Bind(&cc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&cc); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	if err := h.poolSvc.Claim(c.Request().Context(), cc.CustomerID, actor, time.Now()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &operationResult{Success: true})
}

// Return puts a customer back into the pool with a reason
func (h *PoolHTTPHandler) Return(c echo.Context) error {
	var rc returnCustomer
	if err := c.Bind(&rc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&rc); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	if err := h.poolSvc.Return(c.Request().Context(), rc.CustomerID, rc.Reason, actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &operationResult{Success: true})
}
