package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/listenupapp/catalog-server/internal/domain"
	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/normalize"
	"github.com/listenupapp/catalog-server/internal/store"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// CreateUserInput holds the fields for a new user.
type CreateUserInput struct {
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Email string `json:"email" validate:"required,email,max=320"`
}

// UpdateUserInput holds a partial user update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
}

// UserService manages users.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{store: store, validator: validator, logger: logger}
}

// Create registers a user. Emails are compared case-insensitively; a taken
// email is a Conflict.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:  normalize.Name(in.Name),
		Email: normalize.Email(in.Email),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, s.emailError(ctx, "create user", err)
	}

	logger.FromContext(ctx, s.logger).Info("user created", "user_id", user.ID)
	return user, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityUser, err)
		logFailure(ctx, s.logger, "get user", err, "user_id", id)
		return nil, err
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		err = storeError(domainerrors.EntityUser, err)
		logFailure(ctx, s.logger, "list users", err)
		return nil, err
	}
	return users, nil
}

// Update applies a partial update.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = normalize.Name(*in.Name)
	}
	if in.Email != nil {
		user.Email = normalize.Email(*in.Email)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, s.emailError(ctx, "update user", err)
	}

	logger.FromContext(ctx, s.logger).Info("user updated", "user_id", id)
	return user, nil
}

// Delete removes a user along with the playlists they own.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		err = storeError(domainerrors.EntityUser, err)
		logFailure(ctx, s.logger, "delete user", err, "user_id", id)
		return err
	}

	logger.FromContext(ctx, s.logger).Info("user deleted", "user_id", id)
	return nil
}

func (s *UserService) emailError(ctx context.Context, op string, err error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return domainerrors.Conflict("Email already in use")
	}
	err = storeError(domainerrors.EntityUser, err)
	logFailure(ctx, s.logger, op, err)
	return err
}
