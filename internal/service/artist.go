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

// CreateArtistInput holds the fields for a new artist.
type CreateArtistInput struct {
	Name     string  `json:"name" validate:"required,notblank,max=200"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=5000"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateArtistInput holds a partial artist update. An empty string clears
// an optional field.
type UpdateArtistInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=5000"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ArtistService manages artists.
type ArtistService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewArtistService creates a new artist service.
func NewArtistService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ArtistService {
	return &ArtistService{store: store, validator: validator, logger: logger}
}

// Create adds an artist.
func (s *ArtistService) Create(ctx context.Context, in CreateArtistInput) (*domain.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	artist := &domain.Artist{
		Name:     normalize.Name(in.Name),
		Bio:      optional(trimmed(in.Bio)),
		ImageURL: optional(in.ImageURL),
	}
	if err := s.store.CreateArtist(ctx, artist); err != nil {
		err = storeError(domainerrors.EntityArtist, err)
		logFailure(ctx, s.logger, "create artist", err)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("artist created", "artist_id", artist.ID, "name", artist.Name)
	return artist, nil
}

// Get returns an artist by ID.
func (s *ArtistService) Get(ctx context.Context, id int64) (*domain.Artist, error) {
	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityArtist, err)
		logFailure(ctx, s.logger, "get artist", err, "artist_id", id)
		return nil, err
	}
	return artist, nil
}

// List returns all artists.
func (s *ArtistService) List(ctx context.Context) ([]domain.Artist, error) {
	artists, err := s.store.ListArtists(ctx)
	if err != nil {
		err = storeError(domainerrors.EntityArtist, err)
		logFailure(ctx, s.logger, "list artists", err)
		return nil, err
	}
	return artists, nil
}

// Update applies a partial update.
func (s *ArtistService) Update(ctx context.Context, id int64, in UpdateArtistInput) (*domain.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		artist.Name = normalize.Name(*in.Name)
	}
	if in.Bio != nil {
		artist.Bio = optional(trimmed(in.Bio))
	}
	if in.ImageURL != nil {
		artist.ImageURL = optional(in.ImageURL)
	}

	if err := s.store.UpdateArtist(ctx, artist); err != nil {
		err = storeError(domainerrors.EntityArtist, err)
		logFailure(ctx, s.logger, "update artist", err, "artist_id", id)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("artist updated", "artist_id", id)
	return artist, nil
}

// Delete removes an artist and their credits. Songs and albums remain.
func (s *ArtistService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteArtist(ctx, id); err != nil {
		err = storeError(domainerrors.EntityArtist, err)
		logFailure(ctx, s.logger, "delete artist", err, "artist_id", id)
		return err
	}

	logger.FromContext(ctx, s.logger).Info("artist deleted", "artist_id", id)
	return nil
}

// Songs returns the songs an artist is credited on.
func (s *ArtistService) Songs(ctx context.Context, id int64) ([]domain.Song, error) {
	if err := s.requireArtist(ctx, id); err != nil {
		return nil, err
	}
	songs, err := s.store.GetSongsForArtist(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntitySong, err)
		logFailure(ctx, s.logger, "songs for artist", err, "artist_id", id)
		return nil, err
	}
	return songs, nil
}

// Albums returns the albums an artist is credited on.
func (s *ArtistService) Albums(ctx context.Context, id int64) ([]domain.Album, error) {
	if err := s.requireArtist(ctx, id); err != nil {
		return nil, err
	}
	albums, err := s.store.GetAlbumsForArtist(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "albums for artist", err, "artist_id", id)
		return nil, err
	}
	return albums, nil
}

func (s *ArtistService) requireArtist(ctx context.Context, id int64) error {
	ok, err := s.store.ArtistExists(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityArtist, err)
		logFailure(ctx, s.logger, "artist exists", err, "artist_id", id)
		return err
	}
	if !ok {
		return domainerrors.EntityNotFound(domainerrors.EntityArtist, "")
	}
	return nil
}

// requireArtists fails with NotFound(artist) listing every unknown ID.
func requireArtists(ctx context.Context, st store.Store, log *slog.Logger, ids []int64) error {
	missing, err := st.MissingArtists(ctx, ids)
	if err != nil {
		err = storeError(domainerrors.EntityArtist, err)
		logFailure(ctx, log, "check artists", err)
		return err
	}
	if len(missing) > 0 {
		return domainerrors.EntityNotFound(domainerrors.EntityArtist, "").
			WithDetails(map[string]any{"missing_artist_ids": missing})
	}
	return nil
}
