package policy

import (
	"salescrm/internal/auth"
	"salescrm/internal/model"
)

// Action is something an actor tries to do to a resource
type Action string

const (
	ActionViewCustomer     Action = "customer:view"
	ActionUpdateCustomer   Action = "customer:update"
	ActionDeleteCustomer   Action = "customer:delete"
	ActionReturnCustomer   Action = "customer:return"
	ActionFollowUpCustomer Action = "customer:followup"
	ActionManageSettings   Action = "settings:manage"
)

// CustomerResource is the customer under evaluation together with the
// department of its current owner, when known. The department is needed
// only for manager visibility checks.
type CustomerResource struct {
	Customer          *model.Customer
	OwnerDepartmentID *string
}

// Allows is the single authorization decision point. Admins may do
// everything; everyone else is judged by ownership and, for plain
// visibility, department membership.
func Allows(actor auth.Identity, action Action, res CustomerResource) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}

	switch action {
	case ActionManageSettings, ActionDeleteCustomer:
		return false
	case ActionViewCustomer:
		return isOwner(actor, res.Customer) || isOwnersManager(actor, res)
	case ActionUpdateCustomer, ActionReturnCustomer, ActionFollowUpCustomer:
		return isOwner(actor, res.Customer)
	}
	return false
}

func isOwner(actor auth.Identity, c *model.Customer) bool {
	return c != nil && c.OwnerID != nil && *c.OwnerID == actor.ID
}

func isOwnersManager(actor auth.Identity, res CustomerResource) bool {
	if actor.Role != model.RoleManager || actor.DepartmentID == nil {
		return false
	}
	return res.OwnerDepartmentID != nil && *res.OwnerDepartmentID == *actor.DepartmentID
}
