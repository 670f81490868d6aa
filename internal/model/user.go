package model

import "time"

// Role defines what a user is allowed to see and do
type Role string

const (
	// RoleAdmin has full access to every customer and setting
	RoleAdmin Role = "ADMIN"
	// RoleManager sees customers owned by their department
	RoleManager Role = "MANAGER"
	// RoleSales sees only customers they own
	RoleSales Role = "SALES"
)

// User is user model entity
type User struct {
	ID            string
	Username      string
	PasswordHash  string
	Name          string
	Role          Role
	DepartmentID  *string
	IsActive      bool
	LoginAttempts int
	LockedUntil   *time.Time
	CreatedAt     time.Time
}

// Department is department model entity
type Department struct {
	ID   string
	Name string
}
