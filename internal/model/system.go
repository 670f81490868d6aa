package model

import "time"

// Config keys consumed by the pool workflow
const (
	ConfigKeyDailyClaimLimit = "daily_claim_limit"
	ConfigKeyPoolRecycleDays = "pool_recycle_days"
)

const (
	DefaultDailyClaimLimit = 5
	DefaultPoolRecycleDays = 15
)

// SystemConfig is a single tunable key/value pair
type SystemConfig struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LogAction is the kind of audited action
type LogAction string

const (
	LogActionLogin           LogAction = "LOGIN"
	LogActionCreateCustomer  LogAction = "CREATE_CUSTOMER"
	LogActionUpdateCustomer  LogAction = "UPDATE_CUSTOMER"
	LogActionDeleteCustomer  LogAction = "DELETE_CUSTOMER"
	LogActionClaimCustomer   LogAction = "CLAIM_CUSTOMER"
	LogActionReturnCustomer  LogAction = "RETURN_CUSTOMER"
	LogActionRecycleCustomer LogAction = "RECYCLE_CUSTOMER"
	LogActionCreateFollowUp  LogAction = "CREATE_FOLLOWUP"
	LogActionCreateContract  LogAction = "CREATE_CONTRACT"
	LogActionCreatePayment   LogAction = "CREATE_PAYMENT"
	LogActionUpdateSettings  LogAction = "UPDATE_SETTINGS"
)

// SystemLog is an append-only audit trail entry. UserID is nil for
// entries written by background jobs.
type SystemLog struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId"`
	Action    LogAction `json:"action"`
	Target    string    `json:"target"`
	TargetID  *string   `json:"targetId"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}
