package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// fakeStore is an in-memory UserStore used to exercise the service without
// a running document store.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]model.User // keyed by hex id
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]model.User)}
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeStore) Insert(ctx context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.users {
		if other.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	u.ID = primitive.NewObjectID()
	f.users[u.ID.Hex()] = *u
	return nil
}

func (f *fakeStore) Replace(ctx context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := u.ID.Hex()
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	for otherID, other := range f.users {
		if otherID != id && other.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	f.users[id] = *u
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) FindAll(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

// eventSink records published account events.
type eventSink struct {
	mu     sync.Mutex
	events []queue.AccountEvent
}

func (s *eventSink) publish(ctx context.Context, ev queue.AccountEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func newTestService(t *testing.T) (*UserService, *fakeStore, *auth.Issuer, *eventSink) {
	t.Helper()
	store := newFakeStore()
	issuer := auth.NewIssuer("test-secret")
	sink := &eventSink{}
	svc := NewUserService(store, auth.NewBcryptHasher(bcrypt.MinCost), issuer, sink.publish)
	return svc, store, issuer, sink
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc, _, issuer, sink := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "pw1", "Alice")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID.IsZero() {
		t.Fatal("Register did not assign an id")
	}
	if u.PasswordHash == "" || u.PasswordHash == "pw1" {
		t.Fatalf("stored hash %q is missing or equals plaintext", u.PasswordHash)
	}

	token, logged, err := svc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if logged.ID != u.ID {
		t.Fatalf("login returned user %s, want %s", logged.ID.Hex(), u.ID.Hex())
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse issued token: %v", err)
	}
	if claims.Username != "alice" || claims.ID != u.ID.Hex() || claims.Name != "Alice" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if len(sink.events) != 1 || sink.events[0].Kind != queue.EventUserRegistered {
		t.Fatalf("expected one user.registered event, got %+v", sink.events)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw1", "Alice"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "pw2", "Alice2")
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if store.count() != 1 {
		t.Fatalf("duplicate Register mutated the store: %d records", store.count())
	}
}

func TestLogin_FailuresAreDistinct(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw1", "Alice"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, err := svc.Login(ctx, "nobody", "pw1")
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("unknown user: expected ErrUserNotFound, got %v", err)
	}
	_, _, err = svc.Login(ctx, "alice", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password: expected ErrInvalidPassword, got %v", err)
	}
}

func TestUpdateByID_Partial(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "pw1", "Alice")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	id := u.ID.Hex()

	got, err := svc.UpdateByID(ctx, id, "", "Alice B.")
	if err != nil {
		t.Fatalf("UpdateByID(name only) error: %v", err)
	}
	if got.Username != "alice" || got.Name != "Alice B." {
		t.Fatalf("name-only update produced %+v", got)
	}

	got, err = svc.UpdateByID(ctx, id, "alice2", "")
	if err != nil {
		t.Fatalf("UpdateByID(username only) error: %v", err)
	}
	if got.Username != "alice2" || got.Name != "Alice B." {
		t.Fatalf("username-only update produced %+v", got)
	}

	got, err = svc.UpdateByID(ctx, id, "", "")
	if err != nil {
		t.Fatalf("UpdateByID(no fields) error: %v", err)
	}
	if got.Username != "alice2" || got.Name != "Alice B." {
		t.Fatalf("empty update changed the record: %+v", got)
	}

	if _, err := svc.UpdateByID(ctx, primitive.NewObjectID().Hex(), "x", ""); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("unknown id: expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	t.Parallel()
	svc, store, _, sink := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "pw1", "Alice")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := svc.DeleteByID(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("unknown id: expected ErrUserNotFound, got %v", err)
	}
	if store.count() != 1 {
		t.Fatalf("failed delete mutated the store: %d records", store.count())
	}

	if err := svc.DeleteByID(ctx, u.ID.Hex()); err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("record not deleted: %d remain", store.count())
	}
	last := sink.events[len(sink.events)-1]
	if last.Kind != queue.EventUserDeleted || last.Username != "alice" {
		t.Fatalf("expected user.deleted event for alice, got %+v", last)
	}
}

func TestListAll(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := svc.Register(ctx, name, "pw", ""); err != nil {
			t.Fatalf("Register %q error: %v", name, err)
		}
	}
	users, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("ListAll returned %d users, want 3", len(users))
	}
}
