// Package store defines the persistence contract shared by every backend.
// A User is an aggregate: its exercise log is embedded, loaded and saved with it.
package store

import (
	"context"
	"time"
)

// Exercise is one entry of a user's log. It has no identity of its own.
type Exercise struct {
	Description string    `json:"description" bson:"description"`
	Duration    float64   `json:"duration" bson:"duration"`
	Date        time.Time `json:"date" bson:"date"`
}

// User is a user together with its full exercise log in insertion order.
type User struct {
	ID       string
	Username string
	Log      []Exercise
}

// UserSummary is the projection returned when listing users.
type UserSummary struct {
	ID       string `db:"id"`
	Username string `db:"username"`
}

// Store is implemented by mongostore, pgstore and sqlitestore.
//
// Lookups return (nil, nil) when nothing matches, including for ids that are
// not well-formed for the backend. Persistence failures are returned as
// apperror Database errors; a username collision on insert is an apperror
// DuplicateKey error.
type Store interface {
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	InsertUser(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]UserSummary, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	// AppendExercise atomically appends to the user's log and returns the updated user.
	AppendExercise(ctx context.Context, user *User, exercise Exercise) (*User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
