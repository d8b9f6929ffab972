package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/store/sqlite"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// testServices wires every service to a fresh database.
type testServices struct {
	store      *sqlite.Store
	users      *UserService
	artists    *ArtistService
	albums     *AlbumService
	songs      *SongService
	playlists  *PlaylistService
	membership *MembershipService
	details    *DetailService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	v := validation.New()
	membership := NewMembershipService(st, logger)

	return &testServices{
		store:      st,
		users:      NewUserService(st, v, logger),
		artists:    NewArtistService(st, v, logger),
		albums:     NewAlbumService(st, v, logger),
		songs:      NewSongService(st, v, logger),
		playlists:  NewPlaylistService(st, v, logger),
		membership: membership,
		details:    NewDetailService(st, logger),
	}
}

func (ts *testServices) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := ts.users.Create(context.Background(), CreateUserInput{Name: "Listener", Email: email})
	require.NoError(t, err)
	return u
}

func (ts *testServices) artist(t *testing.T, name string) *domain.Artist {
	t.Helper()
	a, err := ts.artists.Create(context.Background(), CreateArtistInput{Name: name})
	require.NoError(t, err)
	return a
}

func (ts *testServices) song(t *testing.T, title string, artistID int64) *domain.Song {
	t.Helper()
	s, err := ts.songs.Create(context.Background(), CreateSongInput{
		Title:     title,
		Duration:  180,
		ArtistIDs: []int64{artistID},
	})
	require.NoError(t, err)
	return s
}

func (ts *testServices) playlist(t *testing.T, userID int64) *domain.Playlist {
	t.Helper()
	p, err := ts.playlists.Create(context.Background(), CreatePlaylistInput{Name: "Mix", UserID: userID})
	require.NoError(t, err)
	return p
}

// playlistFixture creates a playlist and n songs that are not yet members.
func playlistFixture(t *testing.T, ts *testServices, n int) (*domain.Playlist, []*domain.Song) {
	t.Helper()
	owner := ts.user(t, "owner@example.com")
	artist := ts.artist(t, "Band")
	songs := make([]*domain.Song, n)
	for i := range songs {
		songs[i] = ts.song(t, string(rune('A'+i)), artist.ID)
	}
	return ts.playlist(t, owner.ID), songs
}

func ptr[T any](v T) *T { return &v }

// order returns song IDs by position along with their positions.
func order(t *testing.T, ts *testServices, playlistID int64) ([]int64, []int) {
	t.Helper()
	entries, err := ts.membership.ListSongs(context.Background(), playlistID)
	require.NoError(t, err)
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids, domain.Positions(entries)
}
