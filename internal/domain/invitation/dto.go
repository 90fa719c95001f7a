package invitation

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateInvitationRequest struct {
	Email              string           `json:"email"`
	Name               string           `json:"name"`
	Phone              *string          `json:"phone,omitempty"`
	Role               string           `json:"role"`
	Position           *string          `json:"position,omitempty"`
	HireDate           *string          `json:"hire_date,omitempty"`
	BaseSalary         *decimal.Decimal `json:"base_salary,omitempty"`
	InitialAnnualLeave *int             `json:"initial_annual_leave,omitempty"`
	InitialSickLeave   *int             `json:"initial_sick_leave,omitempty"`

	hireDate *time.Time
}

func (r *CreateInvitationRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(r.Email)
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must contain 8 to 15 digits",
		})
	}

	role := user.Role(r.Role)
	if !role.IsValid() || role == user.RoleMember {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, hr, driver",
		})
	}

	if r.HireDate != nil {
		d, ok := validator.IsValidDate(*r.HireDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		} else {
			r.hireDate = &d
		}
	}

	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}
	if r.InitialAnnualLeave != nil && *r.InitialAnnualLeave < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "initial_annual_leave",
			Message: "initial_annual_leave must not be negative",
		})
	}
	if r.InitialSickLeave != nil && *r.InitialSickLeave < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "initial_sick_leave",
			Message: "initial_sick_leave must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToInvitation builds the entity from a validated request.
func (r *CreateInvitationRequest) ToInvitation(invitedBy string) Invitation {
	return Invitation{
		Email:              r.Email,
		Name:               strings.TrimSpace(r.Name),
		Phone:              r.Phone,
		Role:               user.Role(r.Role),
		Position:           r.Position,
		HireDate:           r.hireDate,
		BaseSalary:         r.BaseSalary,
		InitialAnnualLeave: r.InitialAnnualLeave,
		InitialSickLeave:   r.InitialSickLeave,
		InvitedBy:          &invitedBy,
	}
}

type InvitationResponse struct {
	ID                 string           `json:"id"`
	Email              string           `json:"email"`
	Name               string           `json:"name"`
	Phone              *string          `json:"phone,omitempty"`
	Role               string           `json:"role"`
	Position           *string          `json:"position,omitempty"`
	HireDate           *string          `json:"hire_date,omitempty"`
	BaseSalary         *decimal.Decimal `json:"base_salary,omitempty"`
	InitialAnnualLeave *int             `json:"initial_annual_leave,omitempty"`
	InitialSickLeave   *int             `json:"initial_sick_leave,omitempty"`
	Claimed            bool             `json:"claimed"`
	ClaimedBy          *string          `json:"claimed_by,omitempty"`
	ClaimedAt          *time.Time       `json:"claimed_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

func NewInvitationResponse(i Invitation) InvitationResponse {
	resp := InvitationResponse{
		ID:                 i.ID,
		Email:              i.Email,
		Name:               i.Name,
		Phone:              i.Phone,
		Role:               string(i.Role),
		Position:           i.Position,
		BaseSalary:         i.BaseSalary,
		InitialAnnualLeave: i.InitialAnnualLeave,
		InitialSickLeave:   i.InitialSickLeave,
		Claimed:            i.Claimed,
		ClaimedBy:          i.ClaimedBy,
		ClaimedAt:          i.ClaimedAt,
		CreatedAt:          i.CreatedAt,
	}
	if i.HireDate != nil {
		d := i.HireDate.Format("2006-01-02")
		resp.HireDate = &d
	}
	return resp
}

// ClaimResponse is returned by Claim. Claimed is false when there was
// nothing to claim.
type ClaimResponse struct {
	Claimed      bool    `json:"claimed"`
	InvitationID *string `json:"invitation_id,omitempty"`
	Role         *string `json:"role,omitempty"`
}
