package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salescrm/internal/auth"
	"salescrm/internal/model"
)

var departmentID = "5e2b1c0f-9f0a-4f62-93e4-1fb1a0f0c9ab"
var otherDepartmentID = "0b4c9a31-2c55-4c93-95a1-9f7beed2caa2"

var admin = auth.Identity{ID: "admin-id", Role: model.RoleAdmin}
var manager = auth.Identity{ID: "manager-id", Role: model.RoleManager, DepartmentID: &departmentID}
var sales = auth.Identity{ID: "sales-id", Role: model.RoleSales, DepartmentID: &departmentID}

func ownedBy(ownerID string) *model.Customer {
	return &model.Customer{
		ID:      "ecc770d9-4576-4f72-affa-8b1454246692",
		Status:  model.CustomerStatusAssigned,
		OwnerID: &ownerID,
	}
}

func TestAllows(t *testing.T) {
	tests := []struct {
		name    string
		actor   auth.Identity
		action  Action
		res     CustomerResource
		allowed bool
	}{
		{
			name:    "admin may do anything",
			actor:   admin,
			action:  ActionDeleteCustomer,
			res:     CustomerResource{Customer: ownedBy("sales-id")},
			allowed: true,
		},
		{
			name:    "admin may manage settings",
			actor:   admin,
			action:  ActionManageSettings,
			allowed: true,
		},
		{
			name:    "sales may view own customer",
			actor:   sales,
			action:  ActionViewCustomer,
			res:     CustomerResource{Customer: ownedBy("sales-id")},
			allowed: true,
		},
		{
			name:    "sales may not view colleague's customer",
			actor:   sales,
			action:  ActionViewCustomer,
			res:     CustomerResource{Customer: ownedBy("other-sales-id")},
			allowed: false,
		},
		{
			name:    "sales may not delete own customer",
			actor:   sales,
			action:  ActionDeleteCustomer,
			res:     CustomerResource{Customer: ownedBy("sales-id")},
			allowed: false,
		},
		{
			name:    "sales may not manage settings",
			actor:   sales,
			action:  ActionManageSettings,
			allowed: false,
		},
		{
			name:    "sales may return own customer",
			actor:   sales,
			action:  ActionReturnCustomer,
			res:     CustomerResource{Customer: ownedBy("sales-id")},
			allowed: true,
		},
		{
			name:    "sales may not return colleague's customer",
			actor:   sales,
			action:  ActionReturnCustomer,
			res:     CustomerResource{Customer: ownedBy("other-sales-id")},
			allowed: false,
		},
		{
			name:    "manager may view customer owned within department",
			actor:   manager,
			action:  ActionViewCustomer,
			res:     CustomerResource{Customer: ownedBy("other-sales-id"), OwnerDepartmentID: &departmentID},
			allowed: true,
		},
		{
			name:    "manager may not view customer of another department",
			actor:   manager,
			action:  ActionViewCustomer,
			res:     CustomerResource{Customer: ownedBy("other-sales-id"), OwnerDepartmentID: &otherDepartmentID},
			allowed: false,
		},
		{
			name:    "manager may not return customer they do not own",
			actor:   manager,
			action:  ActionReturnCustomer,
			res:     CustomerResource{Customer: ownedBy("other-sales-id"), OwnerDepartmentID: &departmentID},
			allowed: false,
		},
		{
			name:    "manager may update customer they own themselves",
			actor:   manager,
			action:  ActionUpdateCustomer,
			res:     CustomerResource{Customer: ownedBy("manager-id")},
			allowed: true,
		},
		{
			name:    "pooled customer is not viewable by sales",
			actor:   sales,
			action:  ActionViewCustomer,
			res:     CustomerResource{Customer: &model.Customer{ID: "x", Status: model.CustomerStatusPool}},
			allowed: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, Allows(tc.actor, tc.action, tc.res))
		})
	}
}
