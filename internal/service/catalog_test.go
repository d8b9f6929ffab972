package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
)

func TestUserService_CreateAndUpdate(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	u, err := ts.users.Create(ctx, CreateUserInput{Name: "  Ada ", Email: "Ada@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	updated, err := ts.users.Update(ctx, u.ID, UpdateUserInput{Name: ptr("Ada L.")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	ts.user(t, "taken@example.com")

	_, err := ts.users.Create(ctx, CreateUserInput{Name: "Other", Email: "TAKEN@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestUserService_Validation(t *testing.T) {
	ts := setupServices(t)

	_, err := ts.users.Create(context.Background(), CreateUserInput{Name: " ", Email: "not-an-email"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	var de *domainerrors.Error
	require.ErrorAs(t, err, &de)
	details, ok := de.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
}

func TestUserService_DeleteCascadesPlaylists(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	u := ts.user(t, "gone@example.com")
	p := ts.playlist(t, u.ID)

	require.NoError(t, ts.users.Delete(ctx, u.ID))

	_, err := ts.playlists.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = ts.users.Delete(ctx, u.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestArtistService_UpdateClearsOptionalFields(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	a, err := ts.artists.Create(ctx, CreateArtistInput{
		Name:     "Nico",
		Bio:      ptr("Singer"),
		ImageURL: ptr("https://img.example.com/nico.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, a.Bio)

	updated, err := ts.artists.Update(ctx, a.ID, UpdateArtistInput{Bio: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Bio)
	require.NotNil(t, updated.ImageURL)

	got, err := ts.artists.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Bio)
	assert.Equal(t, "Nico", got.Name)
}

func TestArtistService_RelationsRequireArtist(t *testing.T) {
	ts := setupServices(t)

	_, err := ts.artists.Songs(context.Background(), 404)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = ts.artists.Albums(context.Background(), 404)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAlbumService_CreateWithArtists(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	a := ts.artist(t, "Can")
	album, err := ts.albums.Create(ctx, CreateAlbumInput{
		Title:       "Tago Mago",
		ReleaseYear: ptr(1971),
		ArtistIDs:   []int64{a.ID},
	})
	require.NoError(t, err)

	albums, err := ts.artists.Albums(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, album.ID, albums[0].ID)

	_, err = ts.albums.Create(ctx, CreateAlbumInput{Title: "Ghost", ArtistIDs: []int64{a.ID, 999}})
	var de *domainerrors.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerrors.EntityArtist, de.Entity)
	assert.Equal(t, map[string]any{"missing_artist_ids": []int64{999}}, de.Details)
}

func TestAlbumService_UpdateReplacesArtists(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	first := ts.artist(t, "First")
	second := ts.artist(t, "Second")
	album, err := ts.albums.Create(ctx, CreateAlbumInput{Title: "Split", ArtistIDs: []int64{first.ID}})
	require.NoError(t, err)

	updated, err := ts.albums.Update(ctx, album.ID, UpdateAlbumInput{
		ReleaseYear: ptr(0),
		ArtistIDs:   &[]int64{second.ID},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ReleaseYear)

	detail, err := ts.details.Album(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, detail.Artists, 1)
	assert.Equal(t, second.ID, detail.Artists[0].ID)
}

func TestAlbumService_DeleteKeepsSongs(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	a := ts.artist(t, "Neu!")
	album, err := ts.albums.Create(ctx, CreateAlbumInput{Title: "Neu! 75"})
	require.NoError(t, err)
	song, err := ts.songs.Create(ctx, CreateSongInput{
		Title:     "Isi",
		Duration:  300,
		AlbumID:   &album.ID,
		ArtistIDs: []int64{a.ID},
	})
	require.NoError(t, err)

	require.NoError(t, ts.albums.Delete(ctx, album.ID))

	got, err := ts.songs.Get(ctx, song.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AlbumID)
}

func TestSongService_CreateValidation(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	a := ts.artist(t, "Solo")

	tests := []struct {
		name string
		in   CreateSongInput
		want error
	}{
		{
			name: "no artists",
			in:   CreateSongInput{Title: "X", Duration: 10},
			want: domainerrors.ErrValidation,
		},
		{
			name: "zero duration",
			in:   CreateSongInput{Title: "X", Duration: 0, ArtistIDs: []int64{a.ID}},
			want: domainerrors.ErrValidation,
		},
		{
			name: "unknown album",
			in:   CreateSongInput{Title: "X", Duration: 10, AlbumID: ptr(int64(77)), ArtistIDs: []int64{a.ID}},
			want: domainerrors.ErrNotFound,
		},
		{
			name: "unknown artist",
			in:   CreateSongInput{Title: "X", Duration: 10, ArtistIDs: []int64{a.ID + 100}},
			want: domainerrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.songs.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSongService_UpdateDetachesAlbum(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	a := ts.artist(t, "Duo")
	album, err := ts.albums.Create(ctx, CreateAlbumInput{Title: "LP"})
	require.NoError(t, err)
	song, err := ts.songs.Create(ctx, CreateSongInput{
		Title:     "Track",
		Duration:  200,
		AlbumID:   &album.ID,
		ArtistIDs: []int64{a.ID},
	})
	require.NoError(t, err)

	updated, err := ts.songs.Update(ctx, song.ID, UpdateSongInput{AlbumID: ptr(int64(0)), Duration: ptr(210)})
	require.NoError(t, err)
	assert.Nil(t, updated.AlbumID)
	assert.Equal(t, 210, updated.Duration)

	_, err = ts.songs.Update(ctx, song.ID, UpdateSongInput{AlbumID: ptr(int64(55))})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPlaylistService_Create(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	_, err := ts.playlists.Create(ctx, CreatePlaylistInput{Name: "Orphan", UserID: 12})
	var de *domainerrors.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerrors.EntityUser, de.Entity)

	u := ts.user(t, "mixer@example.com")
	p, err := ts.playlists.Create(ctx, CreatePlaylistInput{Name: "Private", UserID: u.ID, IsPublic: ptr(false)})
	require.NoError(t, err)
	assert.False(t, p.IsPublic)

	p2 := ts.playlist(t, u.ID)
	assert.True(t, p2.IsPublic)

	owned, err := ts.playlists.ForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestPlaylistService_UpdatePartial(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	u := ts.user(t, "edit@example.com")
	p, err := ts.playlists.Create(ctx, CreatePlaylistInput{
		Name:        "Road",
		Description: ptr("for driving"),
		UserID:      u.ID,
	})
	require.NoError(t, err)

	updated, err := ts.playlists.Update(ctx, p.ID, UpdatePlaylistInput{IsPublic: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Road", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "for driving", *updated.Description)
	assert.False(t, updated.IsPublic)

	_, err = ts.playlists.Update(ctx, 9999, UpdatePlaylistInput{Name: ptr("x")})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestService_CanceledContext(t *testing.T) {
	ts := setupServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ts.users.Create(ctx, CreateUserInput{Name: "Late", Email: "late@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)

	_, err = ts.membership.AddSong(ctx, 1, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)

	err = ts.membership.RemoveSong(ctx, 1, 1)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)

	_, err = ts.membership.ReorderSong(ctx, 1, 1, 2)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)

	_, err = ts.songs.Get(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
}

func TestArtistService_NormalizesText(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	bio := "  First line\nSecond line  "
	a, err := ts.artists.Create(ctx, CreateArtistInput{Name: "  Beyoncé   Knowles ", Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Beyoncé Knowles", a.Name)
	require.NotNil(t, a.Bio)
	assert.Equal(t, "First line\nSecond line", *a.Bio)
}
