package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/store"
)

const albumColumns = `id, title, release_year, cover_art_url, created_at`

func scanAlbum(scanner interface{ Scan(dest ...any) error }) (*domain.Album, error) {
	var (
		a           domain.Album
		releaseYear sql.NullInt64
		coverArtURL sql.NullString
		createdAt   string
	)
	if err := scanner.Scan(&a.ID, &a.Title, &releaseYear, &coverArtURL, &createdAt); err != nil {
		return nil, err
	}

	a.ReleaseYear = intPtr(releaseYear)
	a.CoverArtURL = stringPtr(coverArtURL)

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse album created_at: %w", err)
	}
	return &a, nil
}

func collectAlbums(rows *sql.Rows) ([]domain.Album, error) {
	defer rows.Close()

	albums := []domain.Album{}
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, *a)
	}
	return albums, rows.Err()
}

// CreateAlbum inserts an album and its artist credits in one transaction.
// An unknown artist returns ErrForeignKey and nothing is written.
func (s *Store) CreateAlbum(ctx context.Context, a *domain.Album, artistIDs []int64) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO albums (title, release_year, cover_art_url, created_at) VALUES (?, ?, ?, ?)`,
			a.Title, nullableInt(a.ReleaseYear), nullableString(a.CoverArtURL), formatTime(a.CreatedAt))
		if err != nil {
			return classify(err)
		}
		if a.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return replaceArtistLinks(ctx, tx, albumArtistLinks, a.ID, artistIDs)
	})
}

// GetAlbum returns an album by ID.
func (s *Store) GetAlbum(ctx context.Context, id int64) (*domain.Album, error) {
	a, err := scanAlbum(s.db.QueryRowContext(ctx,
		`SELECT `+albumColumns+` FROM albums WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return a, err
}

// ListAlbums returns all albums ordered by title.
func (s *Store) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+albumColumns+` FROM albums ORDER BY title COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}
	return collectAlbums(rows)
}

// UpdateAlbum writes every mutable column and, when artistIDs is non-nil,
// replaces the album's credits in the same transaction.
func (s *Store) UpdateAlbum(ctx context.Context, a *domain.Album, artistIDs []int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE albums SET title = ?, release_year = ?, cover_art_url = ? WHERE id = ?`,
			a.Title, nullableInt(a.ReleaseYear), nullableString(a.CoverArtURL), a.ID)
		if err != nil {
			return classify(err)
		}
		if err := mustAffect(res); err != nil {
			return err
		}
		if artistIDs == nil {
			return nil
		}
		return replaceArtistLinks(ctx, tx, albumArtistLinks, a.ID, artistIDs)
	})
}

// DeleteAlbum removes an album. Its songs stay, with album_id cleared.
func (s *Store) DeleteAlbum(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// AlbumExists reports whether an album with id exists.
func (s *Store) AlbumExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM albums WHERE id = ?)`, id)
}
