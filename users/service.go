// Package users, as part of the user management module.
// This file, `service.go`, contains the business logic for user operations.
package users

import (
	"context"
	"log/slog"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/store"
	"github.com/user/exercise-tracker-go/validation"
)

// UserService provides get-or-create and listing of users.
type UserService struct {
	// `store` is the persistence backend, injected via the constructor.
	store store.Store
}

// NewUserService creates a new UserService.
func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

// GetOrCreateUser returns the user called username, creating it on first use.
//
// Two requests for the same new username can both miss the lookup and race to
// insert. The store's unique constraint rejects the loser with DuplicateKey;
// the loser then re-reads the winner's record and returns it with
// recovered=true instead of failing.
func (s *UserService) GetOrCreateUser(ctx context.Context, username string) (resp *UserResponse, recovered bool, err error) {
	// 1. Validate before touching the store.
	name, err := validation.ValidateUsername(username)
	if err != nil {
		return nil, false, err
	}

	// 2. Existing user?
	user, err := s.store.FindUserByUsername(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		r := newUserResponse(user.ID, user.Username)
		return &r, false, nil
	}

	// 3. Create it, recovering from a lost race.
	user, err = s.store.InsertUser(ctx, name)
	if err == nil {
		slog.DebugContext(ctx, "user created", "user_id", user.ID)
		r := newUserResponse(user.ID, user.Username)
		return &r, false, nil
	}
	if !apperror.IsDuplicateKey(err) {
		return nil, false, err
	}

	existing, findErr := s.store.FindUserByUsername(ctx, name)
	if findErr != nil {
		return nil, false, findErr
	}
	if existing == nil {
		// The conflicting record vanished; users are never deleted, so this is a store fault.
		return nil, false, apperror.NewDatabaseError("duplicate username but no existing record", err)
	}
	slog.InfoContext(ctx, "recovered from concurrent user creation", "user_id", existing.ID)
	r := newUserResponse(existing.ID, existing.Username)
	return &r, true, nil
}

// ListUsers returns every user's username and id.
func (s *UserService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	summaries, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]UserResponse, 0, len(summaries))
	for _, summary := range summaries {
		users = append(users, fromSummary(summary))
	}
	return users, nil
}
