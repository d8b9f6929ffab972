package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/listenupapp/catalog-server/internal/domain"
)

// artistLinks describes a junction table between some owner and artists.
type artistLinks struct {
	table    string
	ownerCol string
}

var (
	songArtistLinks  = artistLinks{table: "song_artists", ownerCol: "song_id"}
	albumArtistLinks = artistLinks{table: "album_artists", ownerCol: "album_id"}
)

// replaceArtistLinks deletes the owner's credits and inserts artistIDs.
// Duplicates are collapsed. Must run inside a transaction.
func replaceArtistLinks(ctx context.Context, tx *sql.Tx, l artistLinks, ownerID int64, artistIDs []int64) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM `+l.table+` WHERE `+l.ownerCol+` = ?`, ownerID); err != nil {
		return fmt.Errorf("clear %s: %w", l.table, err)
	}

	ids := slices.Clone(artistIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	for _, artistID := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+l.table+` (`+l.ownerCol+`, artist_id) VALUES (?, ?)`,
			ownerID, artistID); err != nil {
			return fmt.Errorf("insert %s: %w", l.table, classify(err))
		}
	}
	return nil
}

// GetArtistsForSong returns the artists credited on a song.
func (s *Store) GetArtistsForSong(ctx context.Context, songID int64) ([]domain.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.bio, a.image_url, a.created_at
		FROM artists a
		JOIN song_artists sa ON sa.artist_id = a.id
		WHERE sa.song_id = ?
		ORDER BY a.name COLLATE NOCASE, a.id`, songID)
	if err != nil {
		return nil, err
	}
	return collectArtists(rows)
}

// GetArtistsForAlbum returns the artists credited on an album.
func (s *Store) GetArtistsForAlbum(ctx context.Context, albumID int64) ([]domain.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.bio, a.image_url, a.created_at
		FROM artists a
		JOIN album_artists aa ON aa.artist_id = a.id
		WHERE aa.album_id = ?
		ORDER BY a.name COLLATE NOCASE, a.id`, albumID)
	if err != nil {
		return nil, err
	}
	return collectArtists(rows)
}

// GetSongsForAlbum returns the album's track list.
func (s *Store) GetSongsForAlbum(ctx context.Context, albumID int64) ([]domain.Song, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE album_id = ? ORDER BY id`, albumID)
	if err != nil {
		return nil, err
	}
	return collectSongs(rows)
}

// GetSongsForArtist returns the songs an artist is credited on.
func (s *Store) GetSongsForArtist(ctx context.Context, artistID int64) ([]domain.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.duration, s.file_url, s.album_id, s.created_at
		FROM songs s
		JOIN song_artists sa ON sa.song_id = s.id
		WHERE sa.artist_id = ?
		ORDER BY s.id`, artistID)
	if err != nil {
		return nil, err
	}
	return collectSongs(rows)
}

// GetAlbumsForArtist returns the albums an artist is credited on, newest first.
func (s *Store) GetAlbumsForArtist(ctx context.Context, artistID int64) ([]domain.Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT al.id, al.title, al.release_year, al.cover_art_url, al.created_at
		FROM albums al
		JOIN album_artists aa ON aa.album_id = al.id
		WHERE aa.artist_id = ?
		ORDER BY al.release_year DESC, al.id`, artistID)
	if err != nil {
		return nil, err
	}
	return collectAlbums(rows)
}

// GetPlaylistsForUser returns the playlists a user owns.
func (s *Store) GetPlaylistsForUser(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectPlaylists(rows)
}
