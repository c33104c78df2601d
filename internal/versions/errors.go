package versions

import "errors"

var (
	ErrNotFound     = errors.New("resume version not found")
	ErrInvalidInput = errors.New("invalid input")
)
