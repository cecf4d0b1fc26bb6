// Package service contains the business logic of the account service.  This
// file implements UserService, which orchestrates registration, login and
// record management on top of the credential store, the password hasher and
// the token issuer.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// ErrInvalidPassword is returned by Login when the username exists but the
// password does not match.  It is distinct from repository.ErrUserNotFound
// so callers can tell the two failures apart, matching the reference
// contract.
var ErrInvalidPassword = errors.New("invalid password")

// Publisher emits account events.  Failures are ignored by the service;
// the main request flow never depends on the broker.
type Publisher func(ctx context.Context, ev queue.AccountEvent) error

// UserService is the session manager.  It holds no cross-request state:
// every method is a pure composition of its collaborators, so no locking
// is needed here.
type UserService struct {
	store   repository.UserStore
	hasher  auth.PasswordHasher
	issuer  *auth.Issuer
	publish Publisher
}

// NewUserService wires the service from its collaborators.  publish may be
// nil to disable event emission (tests, or deployments without a broker).
func NewUserService(store repository.UserStore, hasher auth.PasswordHasher, issuer *auth.Issuer, publish Publisher) *UserService {
	return &UserService{store: store, hasher: hasher, issuer: issuer, publish: publish}
}

// Register creates a new account.  The uniqueness check runs before the
// expensive hash; a concurrent duplicate that slips past it is caught by
// the store's unique index and surfaces as the same ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password, name string) (*model.User, error) {
	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return nil, repository.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{Username: username, PasswordHash: hash, Name: name}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}
	s.emit(ctx, queue.EventUserRegistered, u)
	return u, nil
}

// Login verifies credentials and issues a session token.  The existence
// check strictly precedes the password check so the two failures remain
// distinguishable.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", nil, ErrInvalidPassword
	}
	token, err := s.issuer.Issue(auth.Claims{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
	})
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.store.FindByID(ctx, id)
}

// UpdateByID applies a partial update: only non-empty fields replace the
// stored values, so a caller cannot clear a field by sending "".
func (s *UserService) UpdateByID(ctx context.Context, id, username, name string) (*model.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if username != "" {
		u.Username = username
	}
	if name != "" {
		u.Name = name
	}
	if err := s.store.Replace(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteByID removes the user with the given id.
func (s *UserService) DeleteByID(ctx context.Context, id string) error {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, queue.EventUserDeleted, u)
	return nil
}

// ListAll returns every user record.
func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	return s.store.FindAll(ctx)
}

// emit publishes an account event, ignoring broker failures.
func (s *UserService) emit(ctx context.Context, kind string, u *model.User) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, queue.AccountEvent{
		Kind:       kind,
		UserID:     u.ID.Hex(),
		Username:   u.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
