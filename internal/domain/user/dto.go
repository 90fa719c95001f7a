package user

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                 string           `json:"id"`
	Email              string           `json:"email"`
	Name               string           `json:"name"`
	Phone              *string          `json:"phone,omitempty"`
	Role               string           `json:"role"`
	Status             string           `json:"status"`
	Position           *string          `json:"position,omitempty"`
	HireDate           *string          `json:"hire_date,omitempty"`
	BaseSalary         *decimal.Decimal `json:"base_salary,omitempty"`
	InitialAnnualLeave int              `json:"initial_annual_leave"`
	InitialSickLeave   int              `json:"initial_sick_leave"`
	CreatedAt          time.Time        `json:"created_at"`
}

func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Phone:              u.Phone,
		Role:               string(u.Role),
		Status:             string(u.Status),
		Position:           u.Position,
		BaseSalary:         u.BaseSalary,
		InitialAnnualLeave: u.AnnualLeaveEntitlement(),
		InitialSickLeave:   u.SickLeaveEntitlement(),
		CreatedAt:          u.CreatedAt,
	}
	if u.HireDate != nil {
		d := u.HireDate.Format("2006-01-02")
		resp.HireDate = &d
	}
	return resp
}
