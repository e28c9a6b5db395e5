package entity

import "time"

// Role identifies the coarse permission class of a user
type Role string

const (
	RoleRequester Role = "requester"
	RoleApprover  Role = "approver"
	RoleAdmin     Role = "admin"
)

// CanActOnApprovals reports whether the role may reject or return requests
func (r Role) CanActOnApprovals() bool {
	return r == RoleApprover || r == RoleAdmin
}

// User represents an employee account
type User struct {
	ID             int64     `json:"id"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Actor is the authenticated identity performing a core operation.
// It is always passed explicitly; core code never reads ambient session state.
type Actor struct {
	UserID int64
	Role   Role
}
