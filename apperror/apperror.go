// Package apperror defines a centralized system for application-specific errors.
// Every layer (validation, stores, services) returns these types so the HTTP
// boundary can turn them into consistent status codes and JSON bodies.
package apperror

import (
	"errors"
	"fmt"
	// `net/http` is used for HTTP status codes.
	"net/http"
)

// ErrorType is an enumeration (using `iota`) for different categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents a persistence failure (the store's catch-all)
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// NotFoundError represents a resource not found error
	NotFoundError
	// MissingFieldError represents a required input that was absent or blank
	MissingFieldError
	// InvalidNumberError represents an input that should have been a finite number
	InvalidNumberError
	// InvalidDateError represents an input that could not be parsed as a date
	InvalidDateError
	// BadRequestError represents a generic bad request (e.g. malformed body)
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
	// DuplicateKeyError represents a unique constraint violation reported by a store.
	// Services recover from it; it should never reach a client.
	DuplicateKeyError
)

// String returns a short name for the error type, used in logs.
func (t ErrorType) String() string {
	switch t {
	case DatabaseError:
		return "database"
	case ConfigError:
		return "config"
	case NotFoundError:
		return "not_found"
	case MissingFieldError:
		return "missing_field"
	case InvalidNumberError:
		return "invalid_number"
	case InvalidDateError:
		return "invalid_date"
	case BadRequestError:
		return "bad_request"
	case InternalError:
		return "internal"
	case MigrationError:
		return "migration"
	case DuplicateKeyError:
		return "duplicate_key"
	default:
		return "unknown"
	}
}

// AppError is a custom error type for the application.
// It allows wrapping an underlying error (`Err`) for more detailed debugging,
// while only `Message` is ever shown to API clients.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so `errors.Is` and `errors.As` can inspect the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case NotFoundError:
		return http.StatusNotFound
	case MissingFieldError, InvalidNumberError, InvalidDateError, BadRequestError:
		return http.StatusBadRequest
	case DuplicateKeyError:
		return http.StatusConflict
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is a generic constructor.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// Constructor functions for specific error types.
// `NewDatabaseError("message", err)` reads better than `NewAppError(DatabaseError, "message", err)`.

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewUserNotFoundError creates the NotFoundError used for unknown user ids.
func NewUserNotFoundError(userID string) *AppError {
	return NewNotFoundError("User not found", fmt.Errorf("user %q does not exist", userID))
}

// NewMissingFieldError creates a new MissingFieldError
func NewMissingFieldError(message string, underlyingError error) *AppError {
	return NewAppError(MissingFieldError, message, underlyingError)
}

// NewInvalidNumberError creates a new InvalidNumberError
func NewInvalidNumberError(message string, underlyingError error) *AppError {
	return NewAppError(InvalidNumberError, message, underlyingError)
}

// NewInvalidDateError creates a new InvalidDateError
func NewInvalidDateError(message string, underlyingError error) *AppError {
	return NewAppError(InvalidDateError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// NewDuplicateKeyError creates a new DuplicateKeyError
func NewDuplicateKeyError(message string, underlyingError error) *AppError {
	return NewAppError(DuplicateKeyError, message, underlyingError)
}

// ErrorResponse represents a generic error response payload for API clients.
type ErrorResponse struct {
	Error string `json:"error" example:"A description of the error"`
}

// serverErrorMessage is the only message a client sees for a 5xx response.
const serverErrorMessage = "Server error"

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// Server-side failures never leak their message or underlying error.
func (e *AppError) ToResponse() ErrorResponse {
	if e.StatusCode() >= http.StatusInternalServerError {
		return ErrorResponse{Error: serverErrorMessage}
	}
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
// Wrapped errors are unwrapped with `errors.As`.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Helper functions to check error types.
// These use `errors.As` so they keep working when errors are wrapped.

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool { return isType(err, NotFoundError) }

// IsMissingField checks if an error is a MissingField error
func IsMissingField(err error) bool { return isType(err, MissingFieldError) }

// IsInvalidNumber checks if an error is an InvalidNumber error
func IsInvalidNumber(err error) bool { return isType(err, InvalidNumberError) }

// IsInvalidDate checks if an error is an InvalidDate error
func IsInvalidDate(err error) bool { return isType(err, InvalidDateError) }

// IsDuplicateKey checks if an error is a DuplicateKey error
func IsDuplicateKey(err error) bool { return isType(err, DuplicateKeyError) }

// IsDatabaseError checks if an error is a Database error
func IsDatabaseError(err error) bool { return isType(err, DatabaseError) }

