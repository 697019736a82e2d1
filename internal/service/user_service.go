package service

import (
	"context"
	"log/slog"

	"github.com/taskin/taskin-api/internal/domain"
	"github.com/taskin/taskin-api/internal/idcodec"
	"github.com/taskin/taskin-api/internal/store"
)

// UserService resolves user names to opaque identifiers and opaque
// identifiers back to verified users.
type UserService struct {
	users  store.UserStore
	codec  *idcodec.Codec
	logger *slog.Logger
}

// NewUserService creates a UserService with the given dependencies.
func NewUserService(users store.UserStore, codec *idcodec.Codec, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:  users,
		codec:  codec,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// Login resolves name to its opaque identifier, creating the user on first
// sight. Login is idempotent: the same name always resolves to the same
// identifier, and no duplicate record is ever created (name uniqueness is
// enforced by the persistence layer).
func (s *UserService) Login(ctx context.Context, name string) (string, error) {
	user, err := s.users.GetByName(ctx, name)
	if err == nil {
		return s.codec.Encode(user.ID)
	}
	if !store.IsNotFoundError(err) {
		return "", err
	}

	user, err = domain.NewUser(name)
	if err != nil {
		return "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Two first logins for the same name can race; the loser reads the
		// row the winner just created.
		if store.IsDuplicateError(err) {
			existing, lookupErr := s.users.GetByName(ctx, name)
			if lookupErr != nil {
				return "", lookupErr
			}
			return s.codec.Encode(existing.ID)
		}
		return "", err
	}

	s.logger.Info("user created", "user_id", user.ID)
	return s.codec.Encode(user.ID)
}

// Resolve decodes an opaque user token and confirms the user exists.
// An undecodable token surfaces as idcodec.ErrInvalidToken; a token that
// decodes to a nonexistent user surfaces as store.ErrUserNotFound.
func (s *UserService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}
