package material

import (
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type MaterialResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewMaterialResponse(m Material) MaterialResponse {
	return MaterialResponse{ID: m.ID, Name: m.Name}
}

type CreateMaterialRequest struct {
	Name string `json:"name"`
}

func (r *CreateMaterialRequest) Validate() error {
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
