// Package store defines the persistence contract for the catalog server.
package store

import (
	"context"

	"github.com/listenupapp/catalog-server/internal/domain"
)

// Store defines all persistence operations used by the services.
//
// Get*, Update* and Delete* return ErrNotFound when the row is absent.
// Update* writes every column of an already-merged entity. UpdateAlbum and
// UpdateSong also replace the credits when artistIDs is non-nil, atomically
// with the row.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)

	// Artists
	CreateArtist(ctx context.Context, artist *domain.Artist) error
	GetArtist(ctx context.Context, id int64) (*domain.Artist, error)
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	UpdateArtist(ctx context.Context, artist *domain.Artist) error
	DeleteArtist(ctx context.Context, id int64) error
	ArtistExists(ctx context.Context, id int64) (bool, error)
	MissingArtists(ctx context.Context, ids []int64) ([]int64, error)

	// Albums
	CreateAlbum(ctx context.Context, album *domain.Album, artistIDs []int64) error
	GetAlbum(ctx context.Context, id int64) (*domain.Album, error)
	ListAlbums(ctx context.Context) ([]domain.Album, error)
	UpdateAlbum(ctx context.Context, album *domain.Album, artistIDs []int64) error
	DeleteAlbum(ctx context.Context, id int64) error
	AlbumExists(ctx context.Context, id int64) (bool, error)

	// Songs
	CreateSong(ctx context.Context, song *domain.Song, artistIDs []int64) error
	GetSong(ctx context.Context, id int64) (*domain.Song, error)
	ListSongs(ctx context.Context) ([]domain.Song, error)
	UpdateSong(ctx context.Context, song *domain.Song, artistIDs []int64) error
	DeleteSong(ctx context.Context, id int64) error
	SongExists(ctx context.Context, id int64) (bool, error)

	// Playlists
	CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error)
	ListPlaylists(ctx context.Context) ([]domain.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	DeletePlaylist(ctx context.Context, id int64) error
	PlaylistExists(ctx context.Context, id int64) (bool, error)

	// Relations
	GetArtistsForSong(ctx context.Context, songID int64) ([]domain.Artist, error)
	GetArtistsForAlbum(ctx context.Context, albumID int64) ([]domain.Artist, error)
	GetSongsForAlbum(ctx context.Context, albumID int64) ([]domain.Song, error)
	GetSongsForArtist(ctx context.Context, artistID int64) ([]domain.Song, error)
	GetAlbumsForArtist(ctx context.Context, artistID int64) ([]domain.Album, error)
	GetPlaylistsForUser(ctx context.Context, userID int64) ([]domain.Playlist, error)
	ListPlaylistSongs(ctx context.Context, playlistID int64) ([]domain.PlaylistEntry, error)

	// WithTx runs fn in a single transaction. It commits when fn returns nil
	// and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the playlist membership primitives inside a transaction.
// Nothing written through a Tx is visible to other callers until commit,
// and reads through it see one consistent snapshot.
type Tx interface {
	GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListPlaylistSongs(ctx context.Context, playlistID int64) ([]domain.PlaylistEntry, error)
	PlaylistExists(ctx context.Context, id int64) (bool, error)
	SongExists(ctx context.Context, id int64) (bool, error)

	// MembershipPosition returns ErrNotFound when the song is not in the playlist.
	MembershipPosition(ctx context.Context, playlistID, songID int64) (int, error)
	CountMembers(ctx context.Context, playlistID int64) (int, error)

	// ShiftFrom adds delta to the position of every member at or after from.
	ShiftFrom(ctx context.Context, playlistID int64, from, delta int) error

	// InsertMembership returns ErrAlreadyExists for a duplicate pair.
	InsertMembership(ctx context.Context, ps *domain.PlaylistSong) error
	DeleteMembership(ctx context.Context, playlistID, songID int64) error
	SetPosition(ctx context.Context, playlistID, songID int64, position int) error
}
