package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/catalog-server/internal/domain"
	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/normalize"
	"github.com/listenupapp/catalog-server/internal/store"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// CreatePlaylistInput holds the fields for a new playlist. IsPublic defaults to true.
type CreatePlaylistInput struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// UpdatePlaylistInput holds a partial playlist update.
type UpdatePlaylistInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// PlaylistService manages playlist records. Song membership lives in
// MembershipService.
type PlaylistService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(store store.Store, validator *validation.Validator, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{store: store, validator: validator, logger: logger}
}

// Create adds a playlist owned by UserID.
func (s *PlaylistService) Create(ctx context.Context, in CreatePlaylistInput) (*domain.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	ok, err := s.store.UserExists(ctx, in.UserID)
	if err != nil {
		err = storeError(domainerrors.EntityUser, err)
		logFailure(ctx, s.logger, "user exists", err, "user_id", in.UserID)
		return nil, err
	}
	if !ok {
		return nil, domainerrors.EntityNotFound(domainerrors.EntityUser, "")
	}

	playlist := &domain.Playlist{
		Name:        normalize.Name(in.Name),
		Description: optional(trimmed(in.Description)),
		UserID:      in.UserID,
		IsPublic:    true,
	}
	if in.IsPublic != nil {
		playlist.IsPublic = *in.IsPublic
	}

	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		err = storeError(domainerrors.EntityPlaylist, err)
		logFailure(ctx, s.logger, "create playlist", err)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("playlist created",
		"playlist_id", playlist.ID,
		"user_id", playlist.UserID,
		"public", playlist.IsPublic,
	)
	return playlist, nil
}

// Get returns a playlist by ID.
func (s *PlaylistService) Get(ctx context.Context, id int64) (*domain.Playlist, error) {
	playlist, err := s.store.GetPlaylist(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityPlaylist, err)
		logFailure(ctx, s.logger, "get playlist", err, "playlist_id", id)
		return nil, err
	}
	return playlist, nil
}

// List returns all playlists.
func (s *PlaylistService) List(ctx context.Context) ([]domain.Playlist, error) {
	playlists, err := s.store.ListPlaylists(ctx)
	if err != nil {
		err = storeError(domainerrors.EntityPlaylist, err)
		logFailure(ctx, s.logger, "list playlists", err)
		return nil, err
	}
	return playlists, nil
}

// ForUser returns the playlists a user owns.
func (s *PlaylistService) ForUser(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	ok, err := s.store.UserExists(ctx, userID)
	if err != nil {
		err = storeError(domainerrors.EntityUser, err)
		logFailure(ctx, s.logger, "user exists", err, "user_id", userID)
		return nil, err
	}
	if !ok {
		return nil, domainerrors.EntityNotFound(domainerrors.EntityUser, "")
	}

	playlists, err := s.store.GetPlaylistsForUser(ctx, userID)
	if err != nil {
		err = storeError(domainerrors.EntityPlaylist, err)
		logFailure(ctx, s.logger, "playlists for user", err, "user_id", userID)
		return nil, err
	}
	return playlists, nil
}

// Update applies a partial update.
func (s *PlaylistService) Update(ctx context.Context, id int64, in UpdatePlaylistInput) (*domain.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	playlist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		playlist.Name = normalize.Name(*in.Name)
	}
	if in.Description != nil {
		playlist.Description = optional(trimmed(in.Description))
	}
	if in.IsPublic != nil {
		playlist.IsPublic = *in.IsPublic
	}

	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		err = storeError(domainerrors.EntityPlaylist, err)
		logFailure(ctx, s.logger, "update playlist", err, "playlist_id", id)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("playlist updated", "playlist_id", id)
	return playlist, nil
}

// Delete removes a playlist and its membership rows.
func (s *PlaylistService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeletePlaylist(ctx, id); err != nil {
		err = storeError(domainerrors.EntityPlaylist, err)
		logFailure(ctx, s.logger, "delete playlist", err, "playlist_id", id)
		return err
	}

	logger.FromContext(ctx, s.logger).Info("playlist deleted", "playlist_id", id)
	return nil
}
