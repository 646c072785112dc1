package errors

import "errors"

var (
	ErrNotFound = errors.New("operating hours rule not found")

	ErrInvalidID = errors.New("invalid ground ID format")
)
