package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

type account struct {
	username string
	password string
	user     domain.User
}

// accounts is the complete credential table. There is no registration,
// hashing, expiry or lockout.
var accounts = []account{
	{username: "admin", password: "password", user: domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}},
	{username: "user", password: "password", user: domain.User{ID: 2, Username: "user", Role: domain.RoleUser}},
}

// AuthService checks credentials against the static accounts and keeps the
// current identity in the store.
type AuthService struct {
	store *Store
	log   zerolog.Logger
}

func NewAuthService(store *Store, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, log: log}
}

// Login returns the matching user and records it as the current identity.
// Unknown usernames and wrong passwords both yield nil, nil.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	for _, a := range accounts {
		if a.username != username || a.password != password {
			continue
		}
		u := a.user
		if err := s.store.Set(ctx, KeyCurrentUser, u); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		s.log.Info().Str("username", u.Username).Str("role", string(u.Role)).Msg("user logged in")
		return &u, nil
	}

	s.log.Info().Str("username", username).Msg("login rejected")
	return nil, nil
}

// Logout forgets the current identity.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser returns the persisted identity, or nil when nobody is logged in.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	var u domain.User
	found, err := s.store.Get(ctx, KeyCurrentUser, &u)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if !found || u.Username == "" {
		return nil, nil
	}
	return &u, nil
}
