package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if errors.Unwrap(wrapped) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name       string
		appErr     *AppError
		wantCode   string
		wantStatus int
	}{
		{"past slot", PastSlot("Cannot book a time slot that has already passed"), CodePastSlot, http.StatusBadRequest},
		{"profile incomplete", ProfileIncomplete(), CodeProfileIncomplete, http.StatusPreconditionRequired},
		{"outside hours", OutsideOperatingHours("slot 05:00 is outside operating hours"), CodeOutsideHours, http.StatusUnprocessableEntity},
		{"slot already booked", SlotAlreadyBooked("10:00"), CodeSlotAlreadyBooked, http.StatusConflict},
		{"already cancelled", AlreadyCancelled("abc"), CodeAlreadyCancelled, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.appErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.appErr.Code)
			}
			if tt.appErr.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.appErr.StatusCode())
			}
		})
	}
}

func TestSlotAlreadyBooked_Details(t *testing.T) {
	err := SlotAlreadyBooked("14:00")
	if err.Details["slot"] != "14:00" {
		t.Errorf("expected slot detail '14:00', got %v", err.Details["slot"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Ground")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError should return the same AppError")
	}

	plain := errors.New("boom")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("expected %s for plain error, got %s", CodeInternal, wrapped.Code)
	}
	if wrapped.Err != plain {
		t.Errorf("expected plain error to be preserved")
	}
}
