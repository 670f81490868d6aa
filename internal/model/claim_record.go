package model

import "time"

// ClaimRecord is an append-only record of a single successful pool claim.
// Daily quotas are always derived from these rows, never from a counter.
type ClaimRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CustomerID string    `json:"customerId"`
	ClaimedAt  time.Time `json:"claimedAt"`
}
