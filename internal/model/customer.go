package model

import "time"

// CustomerStatus tells whether a customer is owned or sits in the shared pool
type CustomerStatus string

const (
	// CustomerStatusAssigned means the customer is owned by exactly one user
	CustomerStatusAssigned CustomerStatus = "ASSIGNED"
	// CustomerStatusPool means the customer waits in the pool for a claim
	CustomerStatusPool CustomerStatus = "POOL"
)

// Customer is customer model entity.
// Status ASSIGNED implies OwnerID is set, status POOL implies it is nil.
type Customer struct {
	ID             string         `json:"id" msgpack:"id"`
	Name           string         `json:"name" msgpack:"name"`
	ContactPerson  string         `json:"contactPerson" msgpack:"contactPerson"`
	Phone          string         `json:"phone" msgpack:"phone"`
	Email          *string        `json:"email" msgpack:"email"`
	Address        *string        `json:"address" msgpack:"address"`
	Source         *string        `json:"source" msgpack:"source"`
	Remark         *string        `json:"remark" msgpack:"remark"`
	Status         CustomerStatus `json:"status" msgpack:"status"`
	OwnerID        *string        `json:"ownerId" msgpack:"ownerId"`
	ReturnReason   *string        `json:"returnReason" msgpack:"returnReason"`
	LastFollowUpAt *time.Time     `json:"lastFollowUpAt" msgpack:"lastFollowUpAt"`
	CreatedAt      time.Time      `json:"createdAt" msgpack:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" msgpack:"updatedAt"`
}

// CustomerPage is a single page of customers together with pagination totals
type CustomerPage struct {
	Customers   []*Customer `json:"customers"`
	Total       int         `json:"total"`
	PageSize    int         `json:"pageSize"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
}
