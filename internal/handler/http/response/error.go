package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/material"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/weigh_ticket"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
)

type errorMapping struct {
	status int
	code   string
	errs   []error
	// detailed responses echo the wrapped message instead of the bare sentinel
	detailed bool
}

var errorMappings = []errorMapping{
	{
		status: http.StatusUnauthorized,
		code:   "UNAUTHORIZED",
		errs: []error{
			auth.ErrUnauthorized,
			auth.ErrInvalidCredentials,
			auth.ErrInvalidToken,
			auth.ErrTokenExpired,
			auth.ErrRefreshTokenRevoked,
		},
	},
	{
		status: http.StatusForbidden,
		code:   "FORBIDDEN",
		errs: []error{
			user.ErrInsufficientPermissions,
			user.ErrAccessDenied,
		},
	},
	{
		status: http.StatusNotFound,
		code:   "NOT_FOUND",
		errs: []error{
			user.ErrUserNotFound,
			delivery.ErrDeliveryNotFound,
			leave.ErrLeaveRequestNotFound,
			expense.ErrExpenseNotFound,
			invitation.ErrInvitationNotFound,
			payroll.ErrSalaryRecordNotFound,
			weigh_ticket.ErrWeighTicketNotFound,
			client.ErrClientNotFound,
			material.ErrMaterialNotFound,
			storage.ErrFileNotFound,
		},
	},
	{
		status: http.StatusConflict,
		code:   "CONFLICT",
		errs: []error{
			user.ErrUserEmailExists,
			delivery.ErrOrderNumberExists,
			delivery.ErrOrderNumberExhausted,
			invitation.ErrEmailAlreadyInvited,
			invitation.ErrEmailAlreadyUser,
			payroll.ErrSalaryRecordAlreadyPaid,
			weigh_ticket.ErrTicketNumberExists,
			client.ErrClientNameExists,
			material.ErrMaterialNameExists,
		},
	},
	{
		status:   http.StatusConflict,
		code:     "CONFLICT",
		errs:     []error{delivery.ErrInvalidStatusTransition},
		detailed: true,
	},
	{
		status: http.StatusBadRequest,
		code:   "BAD_REQUEST",
		errs: []error{
			delivery.ErrInvalidDelivery,
			delivery.ErrProofRequired,
			user.ErrNotADriver,
			payroll.ErrInvalidPeriod,
			file.ErrInvalidFileType,
			storage.ErrInvalidPath,
		},
	},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		for _, target := range m.errs {
			if !errors.Is(err, target) {
				continue
			}
			message := target.Error()
			if m.detailed {
				message = err.Error()
			}
			writeError(w, m.status, m.code, message)
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
