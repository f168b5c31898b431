// Package sqlitestore implements store.Store on SQLite, for local development and tests.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/store"
)

//go:embed schema.sql
var schema string

// Store keeps users and their exercises in two tables; the log order is the
// exercises' autoincrement sequence.
type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

type userRow struct {
	ID       string `db:"id"`
	Username string `db:"username"`
}

type exerciseRow struct {
	Description string    `db:"description"`
	Duration    float64   `db:"duration"`
	Date        time.Time `db:"date"`
}

// New applies the schema and returns a Store that owns db.
func New(ctx context.Context, db *sqlx.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, apperror.NewMigrationError("failed to apply SQLite schema", err)
	}
	return &Store{db: db}, nil
}

func loadUser(ctx context.Context, q sqlx.QueryerContext, where string, arg any) (*store.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, q, &row, `SELECT id, username FROM users WHERE `+where+` = ?`, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var rows []exerciseRow
	err = sqlx.SelectContext(ctx, q, &rows,
		`SELECT description, duration, date FROM exercises WHERE user_id = ? ORDER BY seq`, row.ID)
	if err != nil {
		return nil, err
	}

	user := &store.User{ID: row.ID, Username: row.Username, Log: make([]store.Exercise, 0, len(rows))}
	for _, r := range rows {
		user.Log = append(user.Log, store.Exercise{
			Description: r.Description,
			Duration:    r.Duration,
			Date:        r.Date.UTC(),
		})
	}
	return user, nil
}

// FindUserByUsername returns the user with the given username, or nil.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*store.User, error) {
	user, err := loadUser(ctx, s.db, "username", username)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to find user by username", err)
	}
	return user, nil
}

// InsertUser creates a user with an empty log.
func (s *Store) InsertUser(ctx context.Context, username string) (*store.User, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)`, id, username, time.Now().UTC())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, apperror.NewDuplicateKeyError(fmt.Sprintf("username '%s' already exists", username), err)
		}
		return nil, apperror.NewDatabaseError("failed to insert user", err)
	}
	return &store.User{ID: id, Username: username, Log: []store.Exercise{}}, nil
}

// ListUsers returns every user's id and username in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]store.UserSummary, error) {
	users := []store.UserSummary{}
	if err := s.db.SelectContext(ctx, &users, `SELECT id, username FROM users ORDER BY rowid`); err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	return users, nil
}

// FindUserByID returns the user with the given id, or nil when the id is unknown or not a UUID.
func (s *Store) FindUserByID(ctx context.Context, id string) (*store.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	user, err := loadUser(ctx, s.db, "id", id)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to find user by id", err)
	}
	return user, nil
}

// AppendExercise inserts the exercise and reloads the user inside one transaction.
func (s *Store) AppendExercise(ctx context.Context, user *store.User, exercise store.Exercise) (updated *store.User, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO exercises (user_id, description, duration, date)
		SELECT id, ?, ?, ? FROM users WHERE id = ?
	`, exercise.Description, exercise.Duration, exercise.Date.UTC(), user.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to append exercise", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.NewUserNotFoundError(user.ID)
	}

	updated, err = loadUser(ctx, tx, "id", user.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to reload user", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit exercise", err)
	}
	return updated, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperror.NewDatabaseError("failed to ping SQLite", err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
