package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"salescrm/internal/middleware"
	"salescrm/internal/service"
)

type identifier struct {
	ID string `json:"id" validate:"required,uuid"`
}

type newCustomer struct {
	Name          string  `json:"name" validate:"required"`
	ContactPerson string  `json:"contactPerson" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	Source        *string `json:"source"`
	Remark        *string `json:"remark"`
	IntoPool      bool    `json:"intoPool"`
}

type updateCustomer struct {
	ID            string  `param:"id" validate:"required,uuid"`
	Name          string  `json:"name" validate:"required"`
	ContactPerson string  `json:"contactPerson" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	Source        *string `json:"source"`
	Remark        *string `json:"remark"`
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// Get returns a single customer the actor may see
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.FindByID(c.Request().Context(), id, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// GetPage returns a page of assigned customers scoped to the actor's role
func (h *CustomerHTTPHandler) GetPage(c echo.Context) error {
	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	customers, err := h.customerSvc.Page(c.Request().Context(), actor, c.QueryParam("search"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Post creates a new customer owned by the actor, or pooled when imported
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.Create(c.Request().Context(), service.NewCustomerInput{
		Name:          nc.Name,
		ContactPerson: nc.ContactPerson,
		Phone:         nc.Phone,
		Email:         nc.Email,
		Address:       nc.Address,
		Source:        nc.Source,
		Remark:        nc.Remark,
		IntoPool:      nc.IntoPool,
	}, actor, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

// Put updates customer attributes
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	var uc updateCustomer
	if err := c.Bind(&uc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&uc); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.Update(c.Request().Context(), service.UpdateCustomerInput{
		ID:            uc.ID,
		Name:          uc.Name,
		ContactPerson: uc.ContactPerson,
		Phone:         uc.Phone,
		Email:         uc.Email,
		Address:       uc.Address,
		Source:        uc.Source,
		Remark:        uc.Remark,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// DeleteByID deletes a customer, admin only
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), id, actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
