package store

import (
	"context"

	"github.com/taskin/taskin-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByName retrieves a user by their unique name.
	// Returns ErrUserNotFound if the user does not exist.
	GetByName(ctx context.Context, name string) (*domain.User, error)

	// Create saves a new user and fills in its persistence-assigned ID.
	// Returns ErrUserNameExists if the name is already taken.
	Create(ctx context.Context, user *domain.User) error
}
