package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"salescrm/internal/middleware"
	"salescrm/internal/service"
)

type newContract struct {
	CustomerID string  `json:"customerId" validate:"required,uuid"`
	Amount     string  `json:"amount" validate:"required"`
	SignDate   string  `json:"signDate" validate:"required,datetime=2006-01-02"`
	Remark     *string `json:"remark"`
}

type newPayment struct {
	ContractID  string  `param:"id" validate:"required,uuid"`
	Amount      string  `json:"amount" validate:"required"`
	PaymentDate string  `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	Remark      *string `json:"remark"`
}

// ContractHTTPHandler is http handler for contract endpoint
type ContractHTTPHandler struct {
	contractSvc service.ContractService
}

// NewContractHTTPHandler builds new ContractHTTPHandler
func NewContractHTTPHandler(contractSvc service.ContractService) *ContractHTTPHandler {
	return &ContractHTTPHandler{contractSvc: contractSvc}
}

// Post signs a new contract for a customer
func (h *ContractHTTPHandler) Post(c echo.Context) error {
	var nc newContract
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	amount, err := parsePositiveAmount(nc.Amount)
	if err != nil {
		return err
	}

	signDate, err := time.Parse("2006-01-02", nc.SignDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	contract, err := h.contractSvc.Create(c.Request().Context(), service.NewContractInput{
		CustomerID: nc.CustomerID,
		Amount:     amount,
		SignDate:   signDate,
		Remark:     nc.Remark,
	}, actor, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, contract)
}

// PostPayment books a payment against a contract
func (h *ContractHTTPHandler) PostPayment(c echo.Context) error {
	var np newPayment
	if err := c.Bind(&np); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&np); err != nil {
		return err
	}

	amount, err := parsePositiveAmount(np.Amount)
	if err != nil {
		return err
	}

	paymentDate, err := time.Parse("2006-01-02", np.PaymentDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	payment, err := h.contractSvc.AddPayment(c.Request().Context(), service.NewPaymentInput{
		ContractID:  np.ContractID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Remark:      np.Remark,
	}, actor, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, payment)
}

// GetByCustomer lists a customer's contracts
func (h *ContractHTTPHandler) GetByCustomer(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	contracts, err := h.contractSvc.FindByCustomerID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contracts)
}

// GetPayments lists payments booked against a contract
func (h *ContractHTTPHandler) GetPayments(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	payments, err := h.contractSvc.PaymentsByContractID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

func parsePositiveAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "amount is not a valid number")
	}
	if !amount.IsPositive() {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	return amount, nil
}
