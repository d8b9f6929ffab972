// Package domain holds the catalog entities and the aggregates returned by
// detail endpoints.
package domain

import "time"

// User owns playlists. Email is unique (case-insensitive).
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Artist performs songs and releases albums.
type Artist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Album groups songs. Deleting an album leaves its songs in place with no album.
type Album struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	CoverArtURL *string   `json:"cover_art_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Song is a single track. Duration is in seconds and always positive.
type Song struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Duration  int       `json:"duration"`
	FileURL   *string   `json:"file_url,omitempty"`
	AlbumID   *int64    `json:"album_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Playlist is an ordered, user-owned list of songs.
type Playlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	UserID      int64     `json:"user_id"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlaylistSong is a membership row. Position is 1-indexed.
type PlaylistSong struct {
	PlaylistID int64     `json:"playlist_id"`
	SongID     int64     `json:"song_id"`
	Position   int       `json:"position"`
	AddedAt    time.Time `json:"added_at"`
}

// PlaylistEntry is a member song joined with its membership attributes.
type PlaylistEntry struct {
	Song
	Position int       `json:"position"`
	AddedAt  time.Time `json:"added_at"`
}
