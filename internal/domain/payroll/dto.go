package payroll

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateSalariesRequest struct {
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Period string `json:"period"`
}

func (r *CalculateSalariesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}
	if r.Period == "" {
		r.Period = string(PeriodFull)
	}
	if !Period(r.Period).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be one of full, first_half, second_half"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculateSalariesResponse struct {
	DriversProcessed int                    `json:"drivers_processed"`
	Records          []SalaryRecordResponse `json:"records"`
}

type SalaryFilter struct {
	Month    *int    `json:"month,omitempty"`
	Year     *int    `json:"year,omitempty"`
	Period   *string `json:"period,omitempty"`
	Status   *string `json:"status,omitempty"`
	DriverID *string `json:"driver_id,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

func (f *SalaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if f.Period != nil && !Period(*f.Period).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be one of full, first_half, second_half"})
	}
	if f.Status != nil && *f.Status != string(RecordStatusDraft) && *f.Status != string(RecordStatusPaid) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be draft or paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f *SalaryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type MarkPaidRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}
	for _, id := range r.RecordIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "record_ids must contain valid UUIDs"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidResponse struct {
	Updated int64 `json:"updated"`
}

type SalaryRecordResponse struct {
	ID            string          `json:"id"`
	DriverID      string          `json:"driver_id"`
	DriverName    *string         `json:"driver_name,omitempty"`
	PeriodMonth   int             `json:"period_month"`
	PeriodYear    int             `json:"period_year"`
	Period        string          `json:"period"`
	DeliveryCount int             `json:"delivery_count"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	DeliveryPay   decimal.Decimal `json:"delivery_pay"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

func NewSalaryRecordResponse(r SalaryRecord) SalaryRecordResponse {
	return SalaryRecordResponse{
		ID:            r.ID,
		DriverID:      r.DriverID,
		DriverName:    r.DriverName,
		PeriodMonth:   r.PeriodMonth,
		PeriodYear:    r.PeriodYear,
		Period:        string(r.Period),
		DeliveryCount: r.DeliveryCount,
		BaseAmount:    r.BaseAmount,
		DeliveryPay:   r.DeliveryPay,
		TotalAmount:   r.TotalAmount,
		Status:        string(r.Status),
		PaidAt:        r.PaidAt,
	}
}

type ListSalaryRecordResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Records    []SalaryRecordResponse `json:"records"`
}
