package delivery

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in-progress"
	StatusDelivered  Status = "delivered"
	StatusInvoiced   Status = "invoiced"
)

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []Status{
	StatusPending,
	StatusAssigned,
	StatusInProgress,
	StatusDelivered,
	StatusInvoiced,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the order is currently on a driver's plate.
func (s Status) IsActive() bool {
	return s == StatusAssigned || s == StatusInProgress
}

// IsCompleted reports whether the goods have reached the client.
func (s Status) IsCompleted() bool {
	return s == StatusDelivered || s == StatusInvoiced
}

// transitions holds every allowed status move. Anything absent is rejected.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAssigned},
	StatusAssigned:   {StatusAssigned, StatusInProgress, StatusDelivered},
	StatusInProgress: {StatusDelivered},
	StatusDelivered:  {StatusInvoiced},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Item struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

type DeliveryOrder struct {
	ID           string
	OrderNumber  string
	ClientID     *string
	ClientName   string
	Items        []Item
	Status       Status
	DriverID     *string
	DeliveryDate *time.Time
	ProofRef     *string
	Notes        *string
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAssignedTo reports whether userID is the order's driver.
func (o *DeliveryOrder) IsAssignedTo(userID string) bool {
	return o.DriverID != nil && *o.DriverID == userID
}

// DeliveredWithin reports whether the order was completed in [from, to].
func (o *DeliveryOrder) DeliveredWithin(from, to time.Time) bool {
	if !o.Status.IsCompleted() || o.DeliveryDate == nil {
		return false
	}
	d := *o.DeliveryDate
	return !d.Before(from) && !d.After(to)
}

// DeliveryOrderDetail is an order joined with its driver and the resolved proof URL.
type DeliveryOrderDetail struct {
	DeliveryOrder
	DriverName  *string
	DriverEmail *string
	ProofURL    *string
}
