package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/store"
)

const playlistColumns = `id, name, description, user_id, is_public, created_at`

func scanPlaylist(scanner interface{ Scan(dest ...any) error }) (*domain.Playlist, error) {
	var (
		p           domain.Playlist
		description sql.NullString
		createdAt   string
	)
	if err := scanner.Scan(&p.ID, &p.Name, &description, &p.UserID, &p.IsPublic, &createdAt); err != nil {
		return nil, err
	}

	p.Description = stringPtr(description)

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse playlist created_at: %w", err)
	}
	return &p, nil
}

func collectPlaylists(rows *sql.Rows) ([]domain.Playlist, error) {
	defer rows.Close()

	playlists := []domain.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, *p)
	}
	return playlists, rows.Err()
}

// CreatePlaylist inserts a playlist and sets its ID.
// An unknown owner returns ErrForeignKey.
func (s *Store) CreatePlaylist(ctx context.Context, p *domain.Playlist) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO playlists (name, description, user_id, is_public, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.Name, nullableString(p.Description), p.UserID, p.IsPublic, formatTime(p.CreatedAt))
	if err != nil {
		return classify(err)
	}

	p.ID, err = res.LastInsertId()
	return err
}

// GetPlaylist returns a playlist by ID.
func (s *Store) GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error) {
	return getPlaylist(ctx, s.db, id)
}

func getPlaylist(ctx context.Context, q querier, id int64) (*domain.Playlist, error) {
	p, err := scanPlaylist(q.QueryRowContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return p, err
}

// ListPlaylists returns all playlists ordered by ID.
func (s *Store) ListPlaylists(ctx context.Context) ([]domain.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+playlistColumns+` FROM playlists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectPlaylists(rows)
}

// UpdatePlaylist writes every mutable column. Ownership never changes.
func (s *Store) UpdatePlaylist(ctx context.Context, p *domain.Playlist) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE playlists SET name = ?, description = ?, is_public = ? WHERE id = ?`,
		p.Name, nullableString(p.Description), p.IsPublic, p.ID)
	if err != nil {
		return classify(err)
	}
	return mustAffect(res)
}

// DeletePlaylist removes a playlist and all of its membership rows.
func (s *Store) DeletePlaylist(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// PlaylistExists reports whether a playlist with id exists.
func (s *Store) PlaylistExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM playlists WHERE id = ?)`, id)
}
