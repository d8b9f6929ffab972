package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/listenupapp/catalog-server/internal/domain"
	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/store"
)

// Messages returned to clients by membership operations.
const (
	msgPlaylistNotFound   = "Playlist not found"
	msgSongNotFound       = "Song not found"
	msgSongAlreadyPresent = "Song already in playlist"
	msgSongNotInPlaylist  = "Song not found in playlist"
)

// MembershipService maintains the ordered song list of each playlist.
//
// Add and remove keep positions contiguous from 1. Reorder writes the
// requested position as-is, so it can leave gaps or ties; readers order by
// position and then by insertion time.
type MembershipService struct {
	store  store.Store
	logger *slog.Logger
}

// NewMembershipService creates a new membership service.
func NewMembershipService(store store.Store, logger *slog.Logger) *MembershipService {
	return &MembershipService{store: store, logger: logger}
}

// ListSongs returns a playlist's songs in position order.
func (s *MembershipService) ListSongs(ctx context.Context, playlistID int64) ([]domain.PlaylistEntry, error) {
	ok, err := s.store.PlaylistExists(ctx, playlistID)
	if err != nil {
		err = storeError(domainerrors.EntityPlaylist, err)
		logFailure(ctx, s.logger, "playlist exists", err, "playlist_id", playlistID)
		return nil, err
	}
	if !ok {
		return nil, domainerrors.EntityNotFound(domainerrors.EntityPlaylist, msgPlaylistNotFound)
	}

	entries, err := s.store.ListPlaylistSongs(ctx, playlistID)
	if err != nil {
		err = storeError(domainerrors.EntityMembership, err)
		logFailure(ctx, s.logger, "list playlist songs", err, "playlist_id", playlistID)
		return nil, err
	}
	return entries, nil
}

// AddSong inserts songID into the playlist and returns the position it landed at.
//
// A nil position appends. Positions below 1 become 1 and positions past the
// end become count+1. Members at or after the target move down by one.
func (s *MembershipService) AddSong(ctx context.Context, playlistID, songID int64, position *int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, domainerrors.Canceled(err)
	}

	var resolved int
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireMembers(ctx, tx, playlistID, songID); err != nil {
			return err
		}

		count, err := tx.CountMembers(ctx, playlistID)
		if err != nil {
			return err
		}
		resolved = domain.ResolveInsertPosition(position, count)

		if resolved <= count {
			if err := tx.ShiftFrom(ctx, playlistID, resolved, 1); err != nil {
				return err
			}
		}

		err = tx.InsertMembership(ctx, &domain.PlaylistSong{
			PlaylistID: playlistID,
			SongID:     songID,
			Position:   resolved,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.Conflict(msgSongAlreadyPresent)
		}
		return err
	})
	if err != nil {
		err = storeError(domainerrors.EntityMembership, err)
		logFailure(ctx, s.logger, "add song to playlist", err, "playlist_id", playlistID, "song_id", songID)
		return 0, err
	}

	logger.FromContext(ctx, s.logger).Info("song added to playlist",
		"playlist_id", playlistID,
		"song_id", songID,
		"position", resolved,
	)
	return resolved, nil
}

// RemoveSong deletes songID from the playlist and closes the gap it leaves.
func (s *MembershipService) RemoveSong(ctx context.Context, playlistID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return domainerrors.Canceled(err)
	}

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		pos, err := tx.MembershipPosition(ctx, playlistID, songID)
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.EntityNotFound(domainerrors.EntityMembership, msgSongNotInPlaylist)
		}
		if err != nil {
			return err
		}

		if err := tx.DeleteMembership(ctx, playlistID, songID); err != nil {
			return err
		}
		return tx.ShiftFrom(ctx, playlistID, pos+1, -1)
	})
	if err != nil {
		err = storeError(domainerrors.EntityMembership, err)
		logFailure(ctx, s.logger, "remove song from playlist", err, "playlist_id", playlistID, "song_id", songID)
		return err
	}

	logger.FromContext(ctx, s.logger).Info("song removed from playlist", "playlist_id", playlistID, "song_id", songID)
	return nil
}

// ReorderSong sets the position of an existing member to newPosition and
// returns it. Other members are not moved.
func (s *MembershipService) ReorderSong(ctx context.Context, playlistID, songID int64, newPosition int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, domainerrors.Canceled(err)
	}
	if newPosition < 1 {
		return 0, domainerrors.ValidationWithDetails("position must be at least 1",
			map[string]string{"new_position": "must be at least 1"})
	}

	var previous int
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		pos, err := tx.MembershipPosition(ctx, playlistID, songID)
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.EntityNotFound(domainerrors.EntityMembership, msgSongNotInPlaylist)
		}
		if err != nil {
			return err
		}
		previous = pos

		return tx.SetPosition(ctx, playlistID, songID, newPosition)
	})
	if err != nil {
		err = storeError(domainerrors.EntityMembership, err)
		logFailure(ctx, s.logger, "reorder playlist song", err, "playlist_id", playlistID, "song_id", songID)
		return 0, err
	}

	if previous != newPosition {
		logger.FromContext(ctx, s.logger).Warn("playlist order may contain gaps or ties after reorder",
			"playlist_id", playlistID,
			"song_id", songID,
			"from", previous,
			"to", newPosition,
		)
	}
	return newPosition, nil
}

func requireMembers(ctx context.Context, tx store.Tx, playlistID, songID int64) error {
	ok, err := tx.PlaylistExists(ctx, playlistID)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.EntityNotFound(domainerrors.EntityPlaylist, msgPlaylistNotFound)
	}

	ok, err = tx.SongExists(ctx, songID)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.EntityNotFound(domainerrors.EntitySong, msgSongNotFound)
	}
	return nil
}
