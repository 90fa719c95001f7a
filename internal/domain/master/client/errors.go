package client

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientNameExists = errors.New("client with this name already exists")
)
