package ports

import (
	"context"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

// AuthService is the demo-grade gate in front of the dashboard.
type AuthService interface {
	// Login returns nil, nil when the credentials do not match an account.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}
