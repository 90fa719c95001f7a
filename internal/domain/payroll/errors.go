package payroll

import "errors"

var (
	ErrSalaryRecordNotFound    = errors.New("salary record not found")
	ErrSalaryRecordAlreadyPaid = errors.New("salary record already paid")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
)
