package material

import "errors"

var (
	ErrMaterialNotFound   = errors.New("material not found")
	ErrMaterialNameExists = errors.New("material with this name already exists")
)
