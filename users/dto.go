// Package users, as part of the user management module.
// This file, `dto.go`, defines Data Transfer Objects (DTOs) for the users module:
// the request and response bodies of the /api/users endpoints.
package users

import (
	"net/url"

	"github.com/user/exercise-tracker-go/store"
)

// CreateUserRequest represents the data for creating (or fetching) a user.
// @Description Request body for creating a user
type CreateUserRequest struct {
	// The username to create or look up.
	// example: "alice"
	Username string `json:"username" example:"alice"`
}

// BindForm fills the request from an HTML form submission.
func (r *CreateUserRequest) BindForm(values url.Values) {
	r.Username = values.Get("username")
}

// UserResponse represents a user as returned by the API.
// @Description A user and its identifier
type UserResponse struct {
	// The username of the user
	Username string `json:"username" example:"alice"`
	// The identifier assigned by the store
	ID string `json:"_id" example:"65a1c2d3e4f5a6b7c8d9e0f1"`
}

func newUserResponse(id, username string) UserResponse {
	return UserResponse{Username: username, ID: id}
}

func fromSummary(s store.UserSummary) UserResponse {
	return newUserResponse(s.ID, s.Username)
}
