package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type Expense struct {
	ID          string
	SubmittedBy string
	Amount      decimal.Decimal
	Description string
	ReceiptRef  *string
	Status      Status
	ReviewedBy  *string
	ReviewedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	SubmitterName *string
}

// SplitPending partitions expenses into pending and the rest, and sums the
// pending amounts.
func SplitPending(expenses []Expense) (pending []Expense, others []Expense, pendingAmount decimal.Decimal) {
	pendingAmount = decimal.Zero
	for _, e := range expenses {
		if e.Status == StatusPending {
			pending = append(pending, e)
			pendingAmount = pendingAmount.Add(e.Amount)
			continue
		}
		others = append(others, e)
	}
	return pending, others, pendingAmount
}
