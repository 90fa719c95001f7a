package client

import (
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

// ClientResponse represents the response structure for a client.
type ClientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewClientResponse(c Client) ClientResponse {
	return ClientResponse{ID: c.ID, Name: c.Name}
}

// CreateClientRequest represents the request structure for creating a client.
type CreateClientRequest struct {
	Name string `json:"name"`
}

func (r *CreateClientRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
