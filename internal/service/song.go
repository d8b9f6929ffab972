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

// CreateSongInput holds the fields for a new song. At least one artist is required.
type CreateSongInput struct {
	Title     string  `json:"title" validate:"required,notblank,max=300"`
	Duration  int     `json:"duration" validate:"gt=0"`
	FileURL   *string `json:"file_url,omitempty" validate:"omitempty,url"`
	AlbumID   *int64  `json:"album_id,omitempty" validate:"omitempty,gt=0"`
	ArtistIDs []int64 `json:"artist_ids" validate:"required,min=1,unique,dive,gt=0"`
}

// UpdateSongInput holds a partial song update. AlbumID 0 detaches the song
// from its album and an empty FileURL clears it.
type UpdateSongInput struct {
	Title     *string  `json:"title,omitempty" validate:"omitempty,notblank,max=300"`
	Duration  *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	FileURL   *string  `json:"file_url,omitempty" validate:"omitempty,url"`
	AlbumID   *int64   `json:"album_id,omitempty" validate:"omitempty,gte=0"`
	ArtistIDs *[]int64 `json:"artist_ids,omitempty" validate:"omitempty,min=1,unique,dive,gt=0"`
}

// SongService manages catalog songs.
type SongService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewSongService creates a new song service.
func NewSongService(store store.Store, validator *validation.Validator, logger *slog.Logger) *SongService {
	return &SongService{store: store, validator: validator, logger: logger}
}

// Create adds a song. The album, when given, and every artist must exist.
func (s *SongService) Create(ctx context.Context, in CreateSongInput) (*domain.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	if in.AlbumID != nil {
		if err := s.requireAlbum(ctx, *in.AlbumID); err != nil {
			return nil, err
		}
	}
	if err := requireArtists(ctx, s.store, s.logger, in.ArtistIDs); err != nil {
		return nil, err
	}

	song := &domain.Song{
		Title:    normalize.Name(in.Title),
		Duration: in.Duration,
		FileURL:  optional(in.FileURL),
		AlbumID:  in.AlbumID,
	}
	if err := s.store.CreateSong(ctx, song, in.ArtistIDs); err != nil {
		err = storeError(domainerrors.EntitySong, err)
		logFailure(ctx, s.logger, "create song", err)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("song created", "song_id", song.ID, "artists", len(in.ArtistIDs))
	return song, nil
}

// Get returns a song by ID.
func (s *SongService) Get(ctx context.Context, id int64) (*domain.Song, error) {
	song, err := s.store.GetSong(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntitySong, err)
		logFailure(ctx, s.logger, "get song", err, "song_id", id)
		return nil, err
	}
	return song, nil
}

// List returns all songs.
func (s *SongService) List(ctx context.Context) ([]domain.Song, error) {
	songs, err := s.store.ListSongs(ctx)
	if err != nil {
		err = storeError(domainerrors.EntitySong, err)
		logFailure(ctx, s.logger, "list songs", err)
		return nil, err
	}
	return songs, nil
}

// Update applies a partial update.
func (s *SongService) Update(ctx context.Context, id int64, in UpdateSongInput) (*domain.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.Canceled(err)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	song, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		song.Title = normalize.Name(*in.Title)
	}
	if in.Duration != nil {
		song.Duration = *in.Duration
	}
	if in.FileURL != nil {
		song.FileURL = optional(in.FileURL)
	}
	if in.AlbumID != nil {
		song.AlbumID = nil
		if *in.AlbumID != 0 {
			if err := s.requireAlbum(ctx, *in.AlbumID); err != nil {
				return nil, err
			}
			song.AlbumID = in.AlbumID
		}
	}

	var artistIDs []int64
	if in.ArtistIDs != nil {
		if err := requireArtists(ctx, s.store, s.logger, *in.ArtistIDs); err != nil {
			return nil, err
		}
		artistIDs = append([]int64{}, *in.ArtistIDs...)
	}

	if err := s.store.UpdateSong(ctx, song, artistIDs); err != nil {
		err = storeError(domainerrors.EntitySong, err)
		logFailure(ctx, s.logger, "update song", err, "song_id", id)
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("song updated", "song_id", id)
	return song, nil
}

// Delete removes a song and takes it out of every playlist, closing the
// gap it leaves in each one.
func (s *SongService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteSong(ctx, id); err != nil {
		err = storeError(domainerrors.EntitySong, err)
		logFailure(ctx, s.logger, "delete song", err, "song_id", id)
		return err
	}

	logger.FromContext(ctx, s.logger).Info("song deleted", "song_id", id)
	return nil
}

func (s *SongService) requireAlbum(ctx context.Context, id int64) error {
	ok, err := s.store.AlbumExists(ctx, id)
	if err != nil {
		err = storeError(domainerrors.EntityAlbum, err)
		logFailure(ctx, s.logger, "album exists", err, "album_id", id)
		return err
	}
	if !ok {
		return domainerrors.EntityNotFound(domainerrors.EntityAlbum, "")
	}
	return nil
}
