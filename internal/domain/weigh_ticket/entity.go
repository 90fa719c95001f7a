package weigh_ticket

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeighTicket is an append-only weighbridge record.
type WeighTicket struct {
	ID           string
	TicketNumber string
	TruckNumber  string
	Tonnage      decimal.Decimal
	TicketDate   time.Time
	Client       string
	MaterialType string
	ImageRef     *string
	CreatedBy    string
	CreatedAt    time.Time
}
