package analyses

import "errors"

var (
	ErrNotFound     = errors.New("analysis not found")
	ErrNoResult     = errors.New("analysis has no match result yet")
	ErrNoLatex      = errors.New("analysis has no improved resume yet")
	ErrInvalidInput = errors.New("invalid analysis input")
)
