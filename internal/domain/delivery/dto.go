package delivery

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type CreateDeliveryRequest struct {
	ClientName string  `json:"client_name"`
	Items      []Item  `json:"items"`
	DriverID   *string `json:"driver_id,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CreateDeliveryRequest) Validate() error {
	var errs validator.ValidationErrors

	r.ClientName = strings.TrimSpace(r.ClientName)
	if validator.IsEmpty(r.ClientName) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_name",
			Message: "client_name is required",
		})
	}
	if len(r.ClientName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "client_name",
			Message: "client_name must not exceed 255 characters",
		})
	}

	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "items",
			Message: "at least one item is required",
		})
	}
	for i := range r.Items {
		r.Items[i].Description = strings.TrimSpace(r.Items[i].Description)
		if validator.IsEmpty(r.Items[i].Description) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("items[%d].description", i),
				Message: "description is required",
			})
		}
		if !validator.IsPositive(r.Items[i].Quantity) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be greater than zero",
			})
		}
	}

	if r.DriverID != nil && !validator.IsValidUUID(*r.DriverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "driver_id",
			Message: "driver_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

func (r *AssignDriverRequest) Validate() error {
	if !validator.IsValidUUID(r.DriverID) {
		return validator.ValidationErrors{{
			Field:   "driver_id",
			Message: "driver_id must be a valid UUID",
		}}
	}
	return nil
}

type ConfirmDeliveryRequest struct {
	ProofRef string  `json:"proof_ref"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *ConfirmDeliveryRequest) Validate() error {
	if validator.IsEmpty(r.ProofRef) {
		return ErrProofRequired
	}
	return nil
}

type DeliveryFilter struct {
	Search   *string `json:"search,omitempty"`
	Status   *string `json:"status,omitempty"`
	DriverID *string `json:"driver_id,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

func (f *DeliveryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, assigned, in-progress, delivered, invoiced",
		})
	}

	if f.DriverID != nil && !validator.IsValidUUID(*f.DriverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "driver_id",
			Message: "driver_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (f *DeliveryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type DeliveryOrderResponse struct {
	ID           string     `json:"id"`
	OrderNumber  string     `json:"order_number"`
	ClientID     *string    `json:"client_id,omitempty"`
	ClientName   string     `json:"client_name"`
	Items        []Item     `json:"items"`
	Status       string     `json:"status"`
	DriverID     *string    `json:"driver_id,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	ProofRef     *string    `json:"proof_ref,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewDeliveryOrderResponse(o DeliveryOrder) DeliveryOrderResponse {
	items := o.Items
	if items == nil {
		items = []Item{}
	}
	return DeliveryOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		ClientID:     o.ClientID,
		ClientName:   o.ClientName,
		Items:        items,
		Status:       string(o.Status),
		DriverID:     o.DriverID,
		DeliveryDate: o.DeliveryDate,
		ProofRef:     o.ProofRef,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

type DeliveryOrderDetailResponse struct {
	DeliveryOrderResponse
	DriverName  *string `json:"driver_name,omitempty"`
	DriverEmail *string `json:"driver_email,omitempty"`
	ProofURL    *string `json:"proof_url,omitempty"`
}

type ListDeliveryResponse struct {
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
	Orders     []DeliveryOrderResponse `json:"orders"`
}

type StatsResponse struct {
	Total  int64            `json:"total"`
	Counts map[string]int64 `json:"counts"`
}
