package errors

import "errors"

var (
	ErrNotFound = errors.New("ground not found")

	ErrInvalidID = errors.New("invalid ground ID format")
)
