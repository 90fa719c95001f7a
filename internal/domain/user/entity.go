package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin  Role = "admin"  // Back-office administrator - full access
	RoleHR     Role = "hr"     // Reviews leave, expenses, runs payroll
	RoleDriver Role = "driver" // Executes deliveries
	RoleMember Role = "member" // Signed up, no employee profile yet
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleDriver, RoleMember:
		return true
	}
	return false
}

type Status string

const (
	StatusActive  Status = "active"
	StatusOnLeave Status = "on_leave"
)

const (
	DefaultAnnualLeave = 20
	DefaultSickLeave   = 10
)

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Name         string
	Phone        *string
	Role         Role
	Status       Status

	// Employment
	Position           *string
	HireDate           *time.Time
	BaseSalary         *decimal.Decimal
	InitialAnnualLeave *int
	InitialSickLeave   *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnnualLeaveEntitlement returns the configured annual leave days or the default.
func (u *User) AnnualLeaveEntitlement() int {
	if u.InitialAnnualLeave == nil {
		return DefaultAnnualLeave
	}
	return *u.InitialAnnualLeave
}

// SickLeaveEntitlement returns the configured sick leave days or the default.
func (u *User) SickLeaveEntitlement() int {
	if u.InitialSickLeave == nil {
		return DefaultSickLeave
	}
	return *u.InitialSickLeave
}

func (u *User) IsDriver() bool {
	return u.Role == RoleDriver
}

// Identity is the authenticated caller of an operation. It is passed
// explicitly into every service call instead of being read from globals.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

// CanReview reports whether the caller may approve leave or expenses.
func (i Identity) CanReview() bool {
	return i.Role == RoleAdmin || i.Role == RoleHR
}
