// Package users encapsulates all functionality related to user management.
// This file, `handlers.go`, is responsible for handling HTTP requests related to users.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/exercise-tracker-go/httpx"
)

// UserHandlers provides HTTP handlers for user management.
// It holds a reference to the `UserService`, which contains the business logic.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts the user endpoints on a router, typically the one at /api/users.
func (h *UserHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateUser())
	r.Get("/", h.HandleListUsers())
}

// HandleCreateUser godoc
// @Summary Create a user
// @Description Creates a user with the given username, or returns the existing one.
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body CreateUserRequest true "Username to create"
// @Success 200 {object} UserResponse "User created or already existing"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Username is required"
// @Failure 409 {object} UserResponse "Conflict - user was created concurrently; existing user returned"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/users [post]
func (h *UserHandlers) HandleCreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := httpx.Bind(w, r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		user, recovered, err := h.service.GetOrCreateUser(r.Context(), req.Username)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		status := http.StatusOK
		if recovered {
			status = http.StatusConflict
		}
		httpx.WriteJSON(w, status, user)
	}
}

// HandleListUsers godoc
// @Summary List users
// @Description Returns every user's username and id.
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse "All users"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/users [get]
func (h *UserHandlers) HandleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.service.ListUsers(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, users)
	}
}
