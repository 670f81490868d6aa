package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus is contract execution state
type ContractStatus string

const (
	ContractStatusExecuting ContractStatus = "EXECUTING"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// Contract is contract model entity.
// PaidAmount is not a stored column, listings fill it with the booked
// payment total so clients can render the remaining balance.
type Contract struct {
	ID           string          `json:"id"`
	SerialNumber string          `json:"serialNumber"`
	CustomerID   string          `json:"customerId"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	SignDate     time.Time       `json:"signDate"`
	Status       ContractStatus  `json:"status"`
	Remark       *string         `json:"remark"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Payment is payment model entity, always attached to a contract
type Payment struct {
	ID          string          `json:"id"`
	ContractID  string          `json:"contractId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Remark      *string         `json:"remark"`
	CreatedAt   time.Time       `json:"createdAt"`
}
