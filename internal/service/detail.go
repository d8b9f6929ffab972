package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/catalog-server/internal/domain"
	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
	"github.com/listenupapp/catalog-server/internal/store"
)

// DetailService assembles the aggregates returned by the detail endpoints.
// It only reads.
type DetailService struct {
	store  store.Store
	logger *slog.Logger
}

// NewDetailService creates a new detail service.
func NewDetailService(store store.Store, logger *slog.Logger) *DetailService {
	return &DetailService{store: store, logger: logger}
}

// Playlist returns a playlist with its owner and songs in position order.
// The three reads share one transaction.
func (s *DetailService) Playlist(ctx context.Context, id int64) (*domain.PlaylistDetail, error) {
	var detail *domain.PlaylistDetail
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		playlist, err := tx.GetPlaylist(ctx, id)
		if err != nil {
			return storeError(domainerrors.EntityPlaylist, err)
		}

		owner, err := tx.GetUser(ctx, playlist.UserID)
		if err != nil {
			return storeError(domainerrors.EntityUser, err)
		}

		songs, err := tx.ListPlaylistSongs(ctx, id)
		if err != nil {
			return storeError(domainerrors.EntityMembership, err)
		}

		detail = &domain.PlaylistDetail{
			Playlist: *playlist,
			Owner:    *owner,
			Songs:    nonNil(songs),
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "playlist detail", domainerrors.EntityPlaylist, err, "playlist_id", id)
	}
	return detail, nil
}

// Song returns a song with its artists and album.
func (s *DetailService) Song(ctx context.Context, id int64) (*domain.SongDetail, error) {
	song, err := s.store.GetSong(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "song detail", domainerrors.EntitySong, err, "song_id", id)
	}

	artists, err := s.store.GetArtistsForSong(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "song artists", domainerrors.EntityArtist, err, "song_id", id)
	}

	detail := &domain.SongDetail{Song: *song, Artists: nonNil(artists)}
	if song.AlbumID != nil {
		album, err := s.store.GetAlbum(ctx, *song.AlbumID)
		if err != nil {
			return nil, s.fail(ctx, "song album", domainerrors.EntityAlbum, err, "song_id", id)
		}
		detail.Album = album
	}
	return detail, nil
}

// Artist returns an artist with the songs and albums they are credited on.
func (s *DetailService) Artist(ctx context.Context, id int64) (*domain.ArtistDetail, error) {
	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "artist detail", domainerrors.EntityArtist, err, "artist_id", id)
	}

	songs, err := s.store.GetSongsForArtist(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "artist songs", domainerrors.EntitySong, err, "artist_id", id)
	}
	albums, err := s.store.GetAlbumsForArtist(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "artist albums", domainerrors.EntityAlbum, err, "artist_id", id)
	}

	return &domain.ArtistDetail{
		Artist: *artist,
		Songs:  nonNil(songs),
		Albums: nonNil(albums),
	}, nil
}

// Album returns an album with its artists and track list.
func (s *DetailService) Album(ctx context.Context, id int64) (*domain.AlbumDetail, error) {
	album, err := s.store.GetAlbum(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "album detail", domainerrors.EntityAlbum, err, "album_id", id)
	}

	artists, err := s.store.GetArtistsForAlbum(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "album artists", domainerrors.EntityArtist, err, "album_id", id)
	}
	songs, err := s.store.GetSongsForAlbum(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "album songs", domainerrors.EntitySong, err, "album_id", id)
	}

	return &domain.AlbumDetail{
		Album:   *album,
		Artists: nonNil(artists),
		Songs:   nonNil(songs),
	}, nil
}

// User returns a user with the playlists they own.
func (s *DetailService) User(ctx context.Context, id int64) (*domain.UserDetail, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "user detail", domainerrors.EntityUser, err, "user_id", id)
	}

	playlists, err := s.store.GetPlaylistsForUser(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "user playlists", domainerrors.EntityPlaylist, err, "user_id", id)
	}

	return &domain.UserDetail{User: *user, Playlists: nonNil(playlists)}, nil
}

func (s *DetailService) fail(ctx context.Context, op string, kind domainerrors.Entity, err error, args ...any) error {
	err = storeError(kind, err)
	logFailure(ctx, s.logger, op, err, args...)
	return err
}

// nonNil keeps empty relations encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
