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

// CreateAlbumInput holds the fields for a new album.
type CreateAlbumInput struct {
	Title       string  `json:"title" validate:"required,notblank,max=300"`
	ReleaseYear *int    `json:"release_year,omitempty" validate:"omitempty,gte=1000,lte=9999"`
	CoverArtURL *string `json:"cover_art_url,omitempty" validate:"omitempty,url"`
	ArtistIDs   []int64 `json:"artist_ids,omitempty" validate:"omitempty,unique,dive,gt=0"`
}

// UpdateAlbumInput holds a partial album update. ReleaseYear 0 and an empty
// CoverArtURL clear those fields. A non-nil ArtistIDs replaces the credits.
type UpdateAlbumInput struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,notblank,max=300"`
	ReleaseYear *int     `json:"release_year,omitempty" validate:"omitempty,gte=0,lte=9999"`
	CoverArtURL *string  `json:"cover_art_url,omitempty" validate:"omitempty,url"`
	ArtistIDs   *[]int64 `json:"artist_ids,omitempty" validate:"omitempty,unique,dive,gt=0"`
}

// AlbumService manages albums.
type AlbumService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAlbumService creates a new album service.
func NewAlbumService(store store.Store, validator *validation.Validator, logger *slog.Logger) *AlbumService {
	return &AlbumService{store: store, validator: validator, logger: logger}
}

// Create adds an album credited to ArtistIDs, each of which must exist.
func (s *AlbumService) Create(ctx context.Context, in CreateAlbumInput) (*domain.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	if err := requireArtists(ctx, s.store, s.logger, in.ArtistIDs); err != nil {
		return nil, err
	}

	album := &domain.Album{
		Title:       normalize.Name(in.Title),
		ReleaseYear: in.ReleaseYear,
		CoverArtURL: optional(in.CoverArtURL),
	}
	if err := s.store.CreateAlbum(ctx, album, in.ArtistIDs); err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "create album", err)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("album created", "album_id", album.ID, "artists", len(in.ArtistIDs))
	return album, nil
}

// Get returns an album by ID.
func (s *AlbumService) Get(ctx context.Context, id int64) (*domain.Album, error) {
	album, err := s.store.GetAlbum(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "get album", err, "album_id", id)
		return nil, err
	}
	return album, nil
}

// List returns all albums.
func (s *AlbumService) List(ctx context.Context) ([]domain.Album, error) {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "list albums", err)
		return nil, err
	}
	return albums, nil
}

// Update applies a partial update.
func (s *AlbumService) Update(ctx context.Context, id int64, in UpdateAlbumInput) (*domain.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	album, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		album.Title = normalize.Name(*in.Title)
	}
	if in.ReleaseYear != nil {
		album.ReleaseYear = in.ReleaseYear
		if *in.ReleaseYear == 0 {
			album.ReleaseYear = nil
		}
	}
	if in.CoverArtURL != nil {
		album.CoverArtURL = optional(in.CoverArtURL)
	}

	var artistIDs []int64
	if in.ArtistIDs != nil {
		if err := requireArtists(ctx, s.store, s.logger, *in.ArtistIDs); err != nil {
			return nil, err
		}
		artistIDs = append([]int64{}, *in.ArtistIDs...)
	}

	if err := s.store.UpdateAlbum(ctx, album, artistIDs); err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "update album", err, "album_id", id)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("album updated", "album_id", id)
	return album, nil
}

// Delete removes an album. Its songs stay in the catalog without an album.
func (s *AlbumService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "delete album", err, "album_id", id)
		return err
	}

	logger.FromContext(ctx, s.logger).Info("album deleted", "album_id", id)
	return nil
}

// Songs returns the album's track list.
func (s *AlbumService) Songs(ctx context.Context, id int64) ([]domain.Song, error) {
	ok, err := s.store.AlbumExists(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "album exists", err, "album_id", id)
		return nil, err
	}
	if !ok {
		return nil, domainerrors.EntityNotFound(domainerrors.EntityAlbum, "")
	}

	songs, err := s.store.GetSongsForAlbum(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntitySong, err)
		logFailure(ctx, s.logger, "songs for album", err, "album_id", id)
		return nil, err
	}
	return songs, nil
}
