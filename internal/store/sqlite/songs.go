package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/store"
)

const songColumns = `id, title, duration, file_url, album_id, created_at`

func scanSong(scanner interface{ Scan(dest ...any) error }) (*domain.Song, error) {
	var (
		s         domain.Song
		fileURL   sql.NullString
		albumID   sql.NullInt64
		createdAt string
	)
	if err := scanner.Scan(&s.ID, &s.Title, &s.Duration, &fileURL, &albumID, &createdAt); err != nil {
		return nil, err
	}

	s.FileURL = stringPtr(fileURL)
	s.AlbumID = int64Ptr(albumID)

	var err error
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse song created_at: %w", err)
	}
	return &s, nil
}

func collectSongs(rows *sql.Rows) ([]domain.Song, error) {
	defer rows.Close()

	songs := []domain.Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, *s)
	}
	return songs, rows.Err()
}

// CreateSong inserts a song and its artist credits in one transaction.
// An unknown album or artist returns ErrForeignKey and nothing is written.
func (s *Store) CreateSong(ctx context.Context, song *domain.Song, artistIDs []int64) error {
	if song.CreatedAt.IsZero() {
		song.CreatedAt = now()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO songs (title, duration, file_url, album_id, created_at) VALUES (?, ?, ?, ?, ?)`,
			song.Title, song.Duration, nullableString(song.FileURL), nullableInt64(song.AlbumID),
			formatTime(song.CreatedAt))
		if err != nil {
			return classify(err)
		}
		if song.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return replaceArtistLinks(ctx, tx, songArtistLinks, song.ID, artistIDs)
	})
}

// GetSong returns a song by ID.
func (s *Store) GetSong(ctx context.Context, id int64) (*domain.Song, error) {
	song, err := scanSong(s.db.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return song, err
}

// ListSongs returns all songs ordered by ID.
func (s *Store) ListSongs(ctx context.Context) ([]domain.Song, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+songColumns+` FROM songs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectSongs(rows)
}

// UpdateSong writes every mutable column and, when artistIDs is non-nil,
// replaces the song's credits in the same transaction.
func (s *Store) UpdateSong(ctx context.Context, song *domain.Song, artistIDs []int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE songs SET title = ?, duration = ?, file_url = ?, album_id = ? WHERE id = ?`,
			song.Title, song.Duration, nullableString(song.FileURL), nullableInt64(song.AlbumID), song.ID)
		if err != nil {
			return classify(err)
		}
		if err := mustAffect(res); err != nil {
			return err
		}
		if artistIDs == nil {
			return nil
		}
		return replaceArtistLinks(ctx, tx, songArtistLinks, song.ID, artistIDs)
	})
}

// DeleteSong removes a song from the catalog and from every playlist that
// held it, closing the gap it leaves in each of those playlists.
func (s *Store) DeleteSong(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		type slot struct {
			playlistID int64
			position   int
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT playlist_id, position FROM playlist_songs WHERE song_id = ?`, id)
		if err != nil {
			return err
		}
		var slots []slot
		for rows.Next() {
			var sl slot
			if err := rows.Scan(&sl.playlistID, &sl.position); err != nil {
				rows.Close()
				return err
			}
			slots = append(slots, sl)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if err := mustAffect(res); err != nil {
			return err
		}

		m := &membershipTx{q: tx}
		for _, sl := range slots {
			if err := m.ShiftFrom(ctx, sl.playlistID, sl.position+1, -1); err != nil {
				return fmt.Errorf("compact playlist %d: %w", sl.playlistID, err)
			}
		}

		if len(slots) > 0 {
			s.logger.Debug("compacted playlists after song delete", "song_id", id, "playlists", len(slots))
		}
		return nil
	})
}

// SongExists reports whether a song with id exists.
func (s *Store) SongExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM songs WHERE id = ?)`, id)
}
