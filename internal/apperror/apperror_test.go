package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	// Each case checks that errors.Is classifies the constructed error
	// against the right sentinel — this is the contract writeError relies on.
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("Job", "68a1f00000000000000000aa"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("company", "Missing required field: company"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("User already exists"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "InvalidID wraps ErrInvalidID",
			err:       InvalidID(),
			target:    ErrInvalidID,
			wantMatch: true,
		},
		{
			name:      "InvalidCredentials wraps ErrCredentials",
			err:       InvalidCredentials(),
			target:    ErrCredentials,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("Job", "abc"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "InvalidCredentials does NOT match ErrNotFound",
			err:       InvalidCredentials(),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	// Services annotate with fmt.Errorf("...: %w", err); classification must
	// survive the extra layer.
	wrapped := fmt.Errorf("service/job: getting job: %w", NotFound("Job", "abc"))

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is() should match ErrNotFound through a fmt.Errorf wrap")
	}
}

func TestErrorsAs_ExtractsMessage(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ValidationFailed("status", "Missing required field: status"))

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As() failed to extract *AppError")
	}
	if appErr.Message != "Missing required field: status" {
		t.Errorf("Message = %q, want %q", appErr.Message, "Missing required field: status")
	}
	if appErr.Field != "status" {
		t.Errorf("Field = %q, want %q", appErr.Field, "status")
	}
}

func TestInvalidCredentials_SingleMessage(t *testing.T) {
	// The login error must not reveal whether the username or password was
	// wrong, so there is exactly one message for both cases.
	if InvalidCredentials().Message != "Invalid credentials" {
		t.Errorf("Message = %q, want %q", InvalidCredentials().Message, "Invalid credentials")
	}
}
