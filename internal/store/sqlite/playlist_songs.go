package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/store"
)

// membershipTx implements store.Tx on an open transaction.
type membershipTx struct {
	q querier
}

var _ store.Tx = (*membershipTx)(nil)

func (m *membershipTx) PlaylistExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, m.q, `SELECT EXISTS(SELECT 1 FROM playlists WHERE id = ?)`, id)
}

func (m *membershipTx) SongExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, m.q, `SELECT EXISTS(SELECT 1 FROM songs WHERE id = ?)`, id)
}

func (m *membershipTx) MembershipPosition(ctx context.Context, playlistID, songID int64) (int, error) {
	var pos int
	err := m.q.QueryRowContext(ctx,
		`SELECT position FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`,
		playlistID, songID).Scan(&pos)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, store.ErrNotFound
	}
	return pos, err
}

func (m *membershipTx) CountMembers(ctx context.Context, playlistID int64) (int, error) {
	var n int
	err := m.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM playlist_songs WHERE playlist_id = ?`, playlistID).Scan(&n)
	return n, err
}

func (m *membershipTx) ShiftFrom(ctx context.Context, playlistID int64, from, delta int) error {
	_, err := m.q.ExecContext(ctx,
		`UPDATE playlist_songs SET position = position + ? WHERE playlist_id = ? AND position >= ?`,
		delta, playlistID, from)
	if err != nil {
		return fmt.Errorf("shift positions: %w", err)
	}
	return nil
}

func (m *membershipTx) InsertMembership(ctx context.Context, ps *domain.PlaylistSong) error {
	if ps.AddedAt.IsZero() {
		ps.AddedAt = now()
	}
	_, err := m.q.ExecContext(ctx,
		`INSERT INTO playlist_songs (playlist_id, song_id, position, added_at) VALUES (?, ?, ?, ?)`,
		ps.PlaylistID, ps.SongID, ps.Position, formatTime(ps.AddedAt))
	return classify(err)
}

func (m *membershipTx) DeleteMembership(ctx context.Context, playlistID, songID int64) error {
	res, err := m.q.ExecContext(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`, playlistID, songID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (m *membershipTx) SetPosition(ctx context.Context, playlistID, songID int64, position int) error {
	res, err := m.q.ExecContext(ctx,
		`UPDATE playlist_songs SET position = ? WHERE playlist_id = ? AND song_id = ?`,
		position, playlistID, songID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// ListPlaylistSongs returns the playlist's songs in position order. Ties,
// which only a reorder can produce, fall back to insertion time.
func (s *Store) ListPlaylistSongs(ctx context.Context, playlistID int64) ([]domain.PlaylistEntry, error) {
	return listPlaylistSongs(ctx, s.db, playlistID)
}

func (m *membershipTx) ListPlaylistSongs(ctx context.Context, playlistID int64) ([]domain.PlaylistEntry, error) {
	return listPlaylistSongs(ctx, m.q, playlistID)
}

func (m *membershipTx) GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error) {
	return getPlaylist(ctx, m.q, id)
}

func (m *membershipTx) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return getUser(ctx, m.q, id)
}

func listPlaylistSongs(ctx context.Context, q querier, playlistID int64) ([]domain.PlaylistEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT s.id, s.title, s.duration, s.file_url, s.album_id, s.created_at,
		       ps.position, ps.added_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = ?
		ORDER BY ps.position, ps.added_at, s.id`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.PlaylistEntry{}
	for rows.Next() {
		var (
			e         domain.PlaylistEntry
			fileURL   sql.NullString
			albumID   sql.NullInt64
			createdAt string
			addedAt   string
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Duration, &fileURL, &albumID, &createdAt,
			&e.Position, &addedAt); err != nil {
			return nil, err
		}
		e.FileURL = stringPtr(fileURL)
		e.AlbumID = int64Ptr(albumID)
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse song created_at: %w", err)
		}
		if e.AddedAt, err = parseTime(addedAt); err != nil {
			return nil, fmt.Errorf("parse added_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
