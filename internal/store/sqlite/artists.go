package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/store"
)

const artistColumns = `id, name, bio, image_url, created_at`

func scanArtist(scanner interface{ Scan(dest ...any) error }) (*domain.Artist, error) {
	var (
		a         domain.Artist
		bio       sql.NullString
		imageURL  sql.NullString
		createdAt string
	)
	if err := scanner.Scan(&a.ID, &a.Name, &bio, &imageURL, &createdAt); err != nil {
		return nil, err
	}

	a.Bio = stringPtr(bio)
	a.ImageURL = stringPtr(imageURL)

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse artist created_at: %w", err)
	}
	return &a, nil
}

func collectArtists(rows *sql.Rows) ([]domain.Artist, error) {
	defer rows.Close()

	artists := []domain.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, *a)
	}
	return artists, rows.Err()
}

// CreateArtist inserts an artist and sets its ID.
func (s *Store) CreateArtist(ctx context.Context, a *domain.Artist) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO artists (name, bio, image_url, created_at) VALUES (?, ?, ?, ?)`,
		a.Name, nullableString(a.Bio), nullableString(a.ImageURL), formatTime(a.CreatedAt))
	if err != nil {
		return classify(err)
	}

	a.ID, err = res.LastInsertId()
	return err
}

// GetArtist returns an artist by ID.
func (s *Store) GetArtist(ctx context.Context, id int64) (*domain.Artist, error) {
	a, err := scanArtist(s.db.QueryRowContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return a, err
}

// ListArtists returns all artists ordered by name.
func (s *Store) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+artistColumns+` FROM artists ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}
	return collectArtists(rows)
}

// UpdateArtist writes every mutable column.
func (s *Store) UpdateArtist(ctx context.Context, a *domain.Artist) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE artists SET name = ?, bio = ?, image_url = ? WHERE id = ?`,
		a.Name, nullableString(a.Bio), nullableString(a.ImageURL), a.ID)
	if err != nil {
		return classify(err)
	}
	return mustAffect(res)
}

// DeleteArtist removes an artist and their song and album credits.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// ArtistExists reports whether an artist with id exists.
func (s *Store) ArtistExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM artists WHERE id = ?)`, id)
}

// MissingArtists returns the subset of ids with no artist row, in input order.
func (s *Store) MissingArtists(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM artists WHERE id IN (`+placeholders(len(ids))+`)`, int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
