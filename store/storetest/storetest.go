// Package storetest holds a behaviour suite that every store.Store implementation must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/store"
)

// Factory returns an empty store. It should register its own cleanup on t.
type Factory func(t *testing.T) store.Store

// Run exercises the store.Store contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("InsertAndFind", func(t *testing.T) { testInsertAndFind(t, newStore(t)) })
	t.Run("DuplicateUsername", func(t *testing.T) { testDuplicateUsername(t, newStore(t)) })
	t.Run("ConcurrentInsert", func(t *testing.T) { testConcurrentInsert(t, newStore(t)) })
	t.Run("MissingAndMalformedIDs", func(t *testing.T) { testMissingIDs(t, newStore(t)) })
	t.Run("AppendKeepsInsertionOrder", func(t *testing.T) { testAppend(t, newStore(t)) })
	t.Run("AppendToUnknownUser", func(t *testing.T) { testAppendUnknown(t, newStore(t)) })
	t.Run("ListUsers", func(t *testing.T) { testListUsers(t, newStore(t)) })
}

func testInsertAndFind(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.InsertUser(ctx, "alice")
	if err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	if created.ID == "" || created.Username != "alice" || len(created.Log) != 0 {
		t.Fatalf("unexpected created user: %+v", created)
	}

	byName, err := s.FindUserByUsername(ctx, "alice")
	if err != nil || byName == nil || byName.ID != created.ID {
		t.Fatalf("FindUserByUsername: %+v, %v", byName, err)
	}

	byID, err := s.FindUserByID(ctx, created.ID)
	if err != nil || byID == nil || byID.Username != "alice" {
		t.Fatalf("FindUserByID: %+v, %v", byID, err)
	}

	missing, err := s.FindUserByUsername(ctx, "bob")
	if err != nil || missing != nil {
		t.Fatalf("expected no user bob, got %+v, %v", missing, err)
	}
}

func testDuplicateUsername(t *testing.T, s store.Store) {
	ctx := context.Background()
	if _, err := s.InsertUser(ctx, "carol"); err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	_, err := s.InsertUser(ctx, "carol")
	if !apperror.IsDuplicateKey(err) {
		t.Fatalf("second insert: got %v, want DuplicateKey", err)
	}
}

func testConcurrentInsert(t *testing.T, s store.Store) {
	ctx := context.Background()
	const workers = 8

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.InsertUser(ctx, "dave")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperror.IsDuplicateKey(err):
				duplicates++
			default:
				t.Errorf("unexpected insert error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || duplicates != workers-1 {
		t.Fatalf("successes=%d duplicates=%d", successes, duplicates)
	}
}

func testMissingIDs(t *testing.T, s store.Store) {
	ctx := context.Background()
	for _, id := range []string{"", "not-an-id", "64b7f1f1f1f1f1f1f1f1f1f1", "00000000-0000-0000-0000-000000000000"} {
		user, err := s.FindUserByID(ctx, id)
		if err != nil || user != nil {
			t.Errorf("FindUserByID(%q) = %+v, %v; want nil, nil", id, user, err)
		}
	}
}

func testAppend(t *testing.T, s store.Store) {
	ctx := context.Background()
	user, err := s.InsertUser(ctx, "erin")
	if err != nil {
		t.Fatalf("InsertUser: %v", err)
	}

	entries := []store.Exercise{
		{Description: "late", Duration: 10, Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Description: "early", Duration: 20.5, Date: time.Date(2023, 1, 1, 6, 30, 0, 0, time.UTC)},
		{Description: "middle", Duration: 30, Date: time.Date(2023, 2, 1, 12, 0, 0, 123000000, time.UTC)},
	}
	for i, e := range entries {
		updated, err := s.AppendExercise(ctx, user, e)
		if err != nil {
			t.Fatalf("AppendExercise #%d: %v", i, err)
		}
		if len(updated.Log) != i+1 {
			t.Fatalf("after append #%d log has %d entries", i, len(updated.Log))
		}
		user = updated
	}

	reloaded, err := s.FindUserByID(ctx, user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("FindUserByID: %+v, %v", reloaded, err)
	}
	if len(reloaded.Log) != len(entries) {
		t.Fatalf("log has %d entries, want %d", len(reloaded.Log), len(entries))
	}
	for i, want := range entries {
		got := reloaded.Log[i]
		if got.Description != want.Description || got.Duration != want.Duration || !got.Date.Equal(want.Date) {
			t.Errorf("log[%d] = %+v, want %+v", i, got, want)
		}
	}
}

func testAppendUnknown(t *testing.T, s store.Store) {
	ctx := context.Background()
	ghost, err := s.InsertUser(ctx, "ghost")
	if err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	// Keep the well-formed id shape of this backend but point at nothing.
	other, err := s.InsertUser(ctx, "other")
	if err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	unknown := &store.User{ID: swapLast(ghost.ID, other.ID)}
	if found, _ := s.FindUserByID(ctx, unknown.ID); found != nil {
		t.Skip("could not build an unused id for this backend")
	}
	_, err = s.AppendExercise(ctx, unknown, store.Exercise{Description: "x", Duration: 1, Date: time.Now().UTC()})
	if !apperror.IsNotFound(err) {
		t.Fatalf("append to unknown user: got %v, want NotFound", err)
	}
}

func testListUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers on empty store: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %+v", users)
	}

	names := map[string]bool{"frank": true, "grace": true, "heidi": true}
	for name := range names {
		if _, err := s.InsertUser(ctx, name); err != nil {
			t.Fatalf("InsertUser(%s): %v", name, err)
		}
	}
	users, err = s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != len(names) {
		t.Fatalf("got %d users, want %d", len(users), len(names))
	}
	for _, u := range users {
		if !names[u.Username] || u.ID == "" {
			t.Errorf("unexpected summary %+v", u)
		}
	}
}

// swapLast returns id with its last character changed so that it differs from
// both id and avoid while keeping the same format.
func swapLast(id, avoid string) string {
	if id == "" {
		return id
	}
	for _, c := range "0123456789abcdef" {
		candidate := id[:len(id)-1] + string(c)
		if candidate != id && candidate != avoid {
			return candidate
		}
	}
	return id
}
