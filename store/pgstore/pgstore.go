// Package pgstore implements store.Store on PostgreSQL.
// Each user is one row; its exercise log lives in a JSONB column so the whole
// aggregate is read and written with a single statement.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	// `pgx` specific imports for PostgreSQL interaction.
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/store"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Store is the PostgreSQL-backed store. The schema comes from the migrations directory.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on top of an existing pool. The Store owns the pool from then on.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ store.Store = (*Store)(nil)

func (s *Store) scanUser(ctx context.Context, query string, args ...any) (*store.User, error) {
	var (
		user store.User
		log  []store.Exercise
	)
	err := s.pool.QueryRow(ctx, query, args...).Scan(&user.ID, &user.Username, &log)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.Log = log
	return &user, nil
}

// FindUserByUsername returns the user with the given username, or nil.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*store.User, error) {
	user, err := s.scanUser(ctx, `SELECT id::text, username, log FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to find user by username", err)
	}
	return user, nil
}

// InsertUser creates a user with an empty log.
func (s *Store) InsertUser(ctx context.Context, username string) (*store.User, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `INSERT INTO users (id, username) VALUES ($1, $2)`, id, username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperror.NewDuplicateKeyError(fmt.Sprintf("username '%s' already exists", username), err)
		}
		return nil, apperror.NewDatabaseError("failed to insert user", err)
	}
	return &store.User{ID: id, Username: username, Log: []store.Exercise{}}, nil
}

// ListUsers returns every user's id and username in creation order.
func (s *Store) ListUsers(ctx context.Context) ([]store.UserSummary, error) {
	rows, err := s.pool.Query(ctx, `SELECT id::text AS id, username FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[store.UserSummary])
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to scan users", err)
	}
	return users, nil
}

// FindUserByID returns the user with the given id, or nil when the id is unknown or not a UUID.
func (s *Store) FindUserByID(ctx context.Context, id string) (*store.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	user, err := s.scanUser(ctx, `SELECT id::text, username, log FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to find user by id", err)
	}
	return user, nil
}

// AppendExercise concatenates the exercise onto the JSONB log in one UPDATE.
func (s *Store) AppendExercise(ctx context.Context, user *store.User, exercise store.Exercise) (*store.User, error) {
	updated, err := s.scanUser(ctx, `
		UPDATE users
		SET log = log || $2::jsonb
		WHERE id = $1
		RETURNING id::text, username, log
	`, user.ID, []store.Exercise{exercise})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to append exercise", err)
	}
	if updated == nil {
		return nil, apperror.NewUserNotFoundError(user.ID)
	}
	return updated, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return apperror.NewDatabaseError("failed to ping PostgreSQL", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}
