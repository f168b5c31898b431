package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/store"
	"github.com/user/exercise-tracker-go/store/sqlitestore"
)

// racingStore lets another "request" create the same username between the
// service's lookup and its insert.
type racingStore struct {
	store.Store
}

func (s *racingStore) InsertUser(ctx context.Context, username string) (*store.User, error) {
	if _, err := s.Store.InsertUser(ctx, username); err != nil {
		return nil, err
	}
	return s.Store.InsertUser(ctx, username)
}

// untouchableStore fails the test on any call.
type untouchableStore struct {
	store.Store
	t *testing.T
}

func (s untouchableStore) FindUserByUsername(context.Context, string) (*store.User, error) {
	s.t.Fatalf("store reached with invalid input")
	return nil, nil
}

func (s untouchableStore) InsertUser(context.Context, string) (*store.User, error) {
	s.t.Fatalf("store reached with invalid input")
	return nil, nil
}

// failingStore returns a database error from every read.
type failingStore struct {
	store.Store
}

func (failingStore) FindUserByUsername(context.Context, string) (*store.User, error) {
	return nil, apperror.NewDatabaseError("failed to find user by username", errors.New("connection refused"))
}

func (failingStore) ListUsers(context.Context) ([]store.UserSummary, error) {
	return nil, apperror.NewDatabaseError("failed to list users", errors.New("connection refused"))
}

func TestGetOrCreateUser_CreatesThenReturnsExisting(t *testing.T) {
	svc := NewUserService(sqlitestore.OpenMemory(t))
	ctx := context.Background()

	first, recovered, err := svc.GetOrCreateUser(ctx, "alice")
	if err != nil || recovered {
		t.Fatalf("first create: %+v recovered=%v err=%v", first, recovered, err)
	}
	if first.ID == "" || first.Username != "alice" {
		t.Fatalf("unexpected user %+v", first)
	}

	again, recovered, err := svc.GetOrCreateUser(ctx, "  alice ")
	if err != nil || recovered {
		t.Fatalf("second call: recovered=%v err=%v", recovered, err)
	}
	if *again != *first {
		t.Fatalf("second call returned %+v, want %+v", again, first)
	}
}

func TestGetOrCreateUser_EmptyUsernameNeverReachesStore(t *testing.T) {
	svc := NewUserService(untouchableStore{t: t})
	for _, name := range []string{"", "   "} {
		_, _, err := svc.GetOrCreateUser(context.Background(), name)
		if !apperror.IsMissingField(err) {
			t.Fatalf("GetOrCreateUser(%q): got %v, want MissingField", name, err)
		}
	}
}

func TestGetOrCreateUser_RecoversFromLostRace(t *testing.T) {
	inner := sqlitestore.OpenMemory(t)
	svc := NewUserService(&racingStore{Store: inner})
	ctx := context.Background()

	user, recovered, err := svc.GetOrCreateUser(ctx, "bob")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	if !recovered {
		t.Fatalf("expected the recovery path to be taken")
	}

	stored, err := inner.FindUserByUsername(ctx, "bob")
	if err != nil || stored == nil {
		t.Fatalf("FindUserByUsername: %+v %v", stored, err)
	}
	if user.ID != stored.ID {
		t.Fatalf("recovered id %s, stored id %s", user.ID, stored.ID)
	}
}

func TestGetOrCreateUser_ConcurrentCallersShareOneUser(t *testing.T) {
	s := sqlitestore.OpenMemory(t)
	svc := NewUserService(s)
	ctx := context.Background()

	const callers = 10
	results := make([]*UserResponse, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = svc.GetOrCreateUser(ctx, "carol")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if *results[i] != *results[0] {
			t.Fatalf("caller %d got %+v, caller 0 got %+v", i, results[i], results[0])
		}
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(users))
	}
}

func TestGetOrCreateUser_PropagatesStoreErrors(t *testing.T) {
	svc := NewUserService(failingStore{})
	_, _, err := svc.GetOrCreateUser(context.Background(), "dave")
	if !apperror.IsDatabaseError(err) {
		t.Fatalf("got %v, want Database error", err)
	}
}

func TestListUsers(t *testing.T) {
	svc := NewUserService(sqlitestore.OpenMemory(t))
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	if err != nil || users == nil || len(users) != 0 {
		t.Fatalf("empty list: %#v %v", users, err)
	}

	for _, name := range []string{"erin", "frank"} {
		if _, _, err := svc.GetOrCreateUser(ctx, name); err != nil {
			t.Fatalf("GetOrCreateUser(%s): %v", name, err)
		}
	}
	users, err = svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 || users[0].Username != "erin" || users[1].Username != "frank" {
		t.Fatalf("unexpected users %+v", users)
	}
}
