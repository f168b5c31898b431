package exercises

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/store"
	"github.com/user/exercise-tracker-go/validation"
)

// ExerciseService appends to and reads users' exercise logs.
type ExerciseService struct {
	store store.Store
	now   func() time.Time
}

// Option configures an ExerciseService.
type Option func(*ExerciseService)

// WithClock replaces the clock used to date exercises posted without a date.
func WithClock(now func() time.Time) Option {
	return func(s *ExerciseService) {
		s.now = now
	}
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(s store.Store, opts ...Option) *ExerciseService {
	svc := &ExerciseService{store: s, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// AddExercise validates req, then appends it to the log of userID.
func (s *ExerciseService) AddExercise(ctx context.Context, userID string, req AddExerciseRequest) (*ExerciseResponse, error) {
	input, err := validation.ValidateExerciseInput(
		req.Description.String(), req.Duration.String(), req.Date.String(), s.now())
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewUserNotFoundError(userID)
	}

	exercise := store.Exercise{
		Description: input.Description,
		Duration:    input.Duration,
		Date:        input.Date,
	}
	updated, err := s.store.AppendExercise(ctx, user, exercise)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "exercise appended", "user_id", updated.ID, "entries", len(updated.Log))

	return &ExerciseResponse{
		ID:          updated.ID,
		Username:    updated.Username,
		Date:        exercise.Date,
		Duration:    exercise.Duration,
		Description: exercise.Description,
	}, nil
}

// GetLog returns the log of userID, filtered to [From, To] (both inclusive
// and optional), sorted ascending by date with ties kept in insertion order,
// and cut to the first Limit entries when Limit is a non-negative integer.
//
// Query parameters are checked before the user lookup, so a bad bound is a
// 400 even for an unknown user.
func (s *ExerciseService) GetLog(ctx context.Context, userID string, q LogQuery) (*LogResponse, error) {
	from, err := validation.ParseOptionalDateBound("from", q.From)
	if err != nil {
		return nil, err
	}
	to, err := validation.ParseOptionalDateBound("to", q.To)
	if err != nil {
		return nil, err
	}
	limit := validation.ParseOptionalLimit(q.Limit)

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewUserNotFoundError(userID)
	}

	entries := filterByDate(user.Log, from, to)
	slices.SortStableFunc(entries, func(a, b store.Exercise) int {
		return a.Date.Compare(b.Date)
	})
	if limit != nil && *limit < len(entries) {
		entries = entries[:*limit]
	}

	resp := &LogResponse{
		Username: user.Username,
		ID:       user.ID,
		Count:    len(entries),
		Log:      make([]LogEntry, 0, len(entries)),
	}
	if from != nil {
		resp.From = validation.FormatLogDate(*from)
	}
	if to != nil {
		resp.To = validation.FormatLogDate(*to)
	}
	for _, e := range entries {
		resp.Log = append(resp.Log, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        validation.FormatLogDate(e.Date),
		})
	}
	return resp, nil
}

// filterByDate copies the entries of log that fall inside the optional bounds.
func filterByDate(log []store.Exercise, from, to *time.Time) []store.Exercise {
	out := make([]store.Exercise, 0, len(log))
	for _, e := range log {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
