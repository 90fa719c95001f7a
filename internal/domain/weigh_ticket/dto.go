package weigh_ticket

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateWeighTicketRequest struct {
	TicketNumber string          `json:"ticket_number"`
	TruckNumber  string          `json:"truck_number"`
	Tonnage      decimal.Decimal `json:"tonnage"`
	Date         string          `json:"date"`
	Client       string          `json:"client"`
	MaterialType string          `json:"material_type"`

	date time.Time
}

func (r *CreateWeighTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"ticket_number", r.TicketNumber},
		{"truck_number", r.TruckNumber},
		{"client", r.Client},
		{"material_type", r.MaterialType},
	}
	for _, f := range required {
		if validator.IsEmpty(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if !validator.IsPositive(r.Tonnage) {
		errs = append(errs, validator.ValidationError{
			Field:   "tonnage",
			Message: "tonnage must be greater than zero",
		})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.date = date
	return nil
}

// ParsedDate returns the ticket date parsed by a successful Validate.
func (r *CreateWeighTicketRequest) ParsedDate() time.Time {
	return r.date
}

type WeighTicketFilter struct {
	Client *string `json:"client,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *WeighTicketFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		return validator.ValidationErrors{{
			Field:   "limit",
			Message: "limit must not exceed 100",
		}}
	}
	return nil
}

func (f *WeighTicketFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type WeighTicketResponse struct {
	ID           string          `json:"id"`
	TicketNumber string          `json:"ticket_number"`
	TruckNumber  string          `json:"truck_number"`
	Tonnage      decimal.Decimal `json:"tonnage"`
	Date         string          `json:"date"`
	Client       string          `json:"client"`
	MaterialType string          `json:"material_type"`
	ImageRef     *string         `json:"image_ref,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewWeighTicketResponse(t WeighTicket) WeighTicketResponse {
	return WeighTicketResponse{
		ID:           t.ID,
		TicketNumber: t.TicketNumber,
		TruckNumber:  t.TruckNumber,
		Tonnage:      t.Tonnage,
		Date:         t.TicketDate.Format("2006-01-02"),
		Client:       t.Client,
		MaterialType: t.MaterialType,
		ImageRef:     t.ImageRef,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}

type ListWeighTicketResponse struct {
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
	Tickets    []WeighTicketResponse `json:"tickets"`
}
