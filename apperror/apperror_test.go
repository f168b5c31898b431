package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"missing field", NewMissingFieldError("Username is required", nil), http.StatusBadRequest},
		{"invalid number", NewInvalidNumberError("Duration must be a number", nil), http.StatusBadRequest},
		{"invalid date", NewInvalidDateError("Invalid date format", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("bad body", nil), http.StatusBadRequest},
		{"not found", NewNotFoundError("no such thing", nil), http.StatusNotFound},
		{"user not found", NewUserNotFoundError("abc"), http.StatusNotFound},
		{"duplicate key", NewDuplicateKeyError("dup", nil), http.StatusConflict},
		{"database", NewDatabaseError("boom", errors.New("conn reset")), http.StatusInternalServerError},
		{"config", NewConfigError("missing MONGO_URI", nil), http.StatusInternalServerError},
		{"migration", NewMigrationError("dirty schema", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "??", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Fatalf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToResponseHidesServerErrors(t *testing.T) {
	err := NewDatabaseError("failed to insert user", errors.New("E11000 secret detail"))
	if got := err.ToResponse().Error; got != "Server error" {
		t.Fatalf("5xx response leaked %q", got)
	}

	clientErr := NewMissingFieldError("Username is required", nil)
	if got := clientErr.ToResponse().Error; got != "Username is required" {
		t.Fatalf("unexpected client message %q", got)
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	base := NewDuplicateKeyError("username taken", nil)
	wrapped := fmt.Errorf("insert user: %w", base)

	if !IsDuplicateKey(wrapped) {
		t.Fatalf("IsDuplicateKey should match wrapped error")
	}
	if IsNotFound(wrapped) {
		t.Fatalf("IsNotFound should not match duplicate key")
	}
	ae, ok := FromError(wrapped)
	if !ok || ae != base {
		t.Fatalf("FromError did not unwrap: %v %v", ae, ok)
	}
	if _, ok := FromError(errors.New("plain")); ok {
		t.Fatalf("FromError should reject non-AppError values")
	}
}

func TestErrorIncludesUnderlying(t *testing.T) {
	err := NewDatabaseError("ping failed", errors.New("timeout"))
	if got := err.Error(); got != "ping failed: timeout" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, err.Err) {
		t.Fatalf("Unwrap should expose the underlying error")
	}
}

func TestUserNotFoundIsNotFound(t *testing.T) {
	err := NewUserNotFoundError("65a1c2d3e4f5a6b7c8d9e0f1")
	if !IsNotFound(err) || err.Type != NotFoundError {
		t.Fatalf("user not found should be a NotFound error, got %v", err.Type)
	}
	if err.Message != "User not found" {
		t.Fatalf("message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "65a1c2d3e4f5a6b7c8d9e0f1") {
		t.Fatalf("underlying error should name the id: %v", err)
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := map[ErrorType]string{
		ConfigError:       "config",
		NotFoundError:     "not_found",
		DuplicateKeyError: "duplicate_key",
		UnknownError:      "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", typ, got, want)
		}
	}
}
