package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
	CodePastSlot          = "PAST_SLOT"
	CodeProfileIncomplete = "PROFILE_INCOMPLETE"
	CodeOutsideHours      = "OUTSIDE_OPERATING_HOURS"
	CodeSlotAlreadyBooked = "SLOT_ALREADY_BOOKED"
	CodeAlreadyCancelled  = "ALREADY_CANCELLED"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// PastSlot covers both past dates and same-day slots whose start time has
// already elapsed.
func PastSlot(message string) *AppError {
	return &AppError{
		Code:       CodePastSlot,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ProfileIncomplete is recoverable: the caller completes their profile and
// retries the identical request. 428 matches the contract the web client
// dispatches on.
func ProfileIncomplete() *AppError {
	return &AppError{
		Code:       CodeProfileIncomplete,
		Message:    "Complete your profile before booking",
		HTTPStatus: http.StatusPreconditionRequired,
	}
}

func OutsideOperatingHours(message string) *AppError {
	return &AppError{
		Code:       CodeOutsideHours,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func SlotAlreadyBooked(slot string) *AppError {
	return &AppError{
		Code:       CodeSlotAlreadyBooked,
		Message:    "This slot is already booked for the selected date",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"slot": slot,
		},
	}
}

func AlreadyCancelled(id string) *AppError {
	return &AppError{
		Code:       CodeAlreadyCancelled,
		Message:    "Booking is already cancelled",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"id": id,
		},
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
