package model

import "time"

// FollowUpType is the channel a follow-up happened through
type FollowUpType string

const (
	FollowUpTypePhone  FollowUpType = "PHONE"
	FollowUpTypeWechat FollowUpType = "WECHAT"
	FollowUpTypeVisit  FollowUpType = "VISIT"
	FollowUpTypeEmail  FollowUpType = "EMAIL"
	FollowUpTypeOther  FollowUpType = "OTHER"
)

// FollowUp is follow-up model entity
type FollowUp struct {
	ID             string       `json:"id"`
	CustomerID     string       `json:"customerId"`
	UserID         string       `json:"userId"`
	Content        string       `json:"content"`
	Type           FollowUpType `json:"type"`
	NextFollowUpAt *time.Time   `json:"nextFollowUpAt"`
	CreatedAt      time.Time    `json:"createdAt"`
}
