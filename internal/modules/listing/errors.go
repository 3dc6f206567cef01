package listing

import "errors"

var (
	ErrNotFound       = errors.New("listing not found")
	ErrInvalidRequest = errors.New("invalid request")
)
