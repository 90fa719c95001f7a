package invitation

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Invitation is a pre-provisioned employee profile waiting for its owner to
// sign in with the matching email.
type Invitation struct {
	ID                 string
	Email              string
	Name               string
	Phone              *string
	Role               user.Role
	Position           *string
	HireDate           *time.Time
	BaseSalary         *decimal.Decimal
	InitialAnnualLeave *int
	InitialSickLeave   *int

	Claimed   bool
	ClaimedBy *string
	ClaimedAt *time.Time
	InvitedBy *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyTo copies the prefilled profile onto u and activates it.
func (i *Invitation) ApplyTo(u *user.User) {
	u.Name = i.Name
	u.Phone = i.Phone
	u.Role = i.Role
	u.Position = i.Position
	u.HireDate = i.HireDate
	u.BaseSalary = i.BaseSalary
	u.InitialAnnualLeave = i.InitialAnnualLeave
	u.InitialSickLeave = i.InitialSickLeave
	u.Status = user.StatusActive
}
