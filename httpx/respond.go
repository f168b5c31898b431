// Package httpx holds the helpers every handler uses to read requests and write responses.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/exercise-tracker-go/apperror"
)

// WriteJSON serializes `data` to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; all that is left is to record it.
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError converts any error into the standard `{"error": "..."}` body.
// Errors that are not *apperror.AppError become a 500. Server-side failures are
// logged with the request id and never expose their details to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"kind", appErr.Type.String(),
			"error", appErr.Error(),
		)
	}

	WriteJSON(w, status, appErr.ToResponse())
}
