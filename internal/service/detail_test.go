package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
)

func TestDetail_Playlist(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	p, songs := playlistFixture(t, ts, 3)

	_, err := ts.membership.AddSong(ctx, p.ID, songs[2].ID, nil)
	require.NoError(t, err)
	_, err = ts.membership.AddSong(ctx, p.ID, songs[0].ID, ptr(1))
	require.NoError(t, err)

	detail, err := ts.details.Playlist(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, detail.ID)
	assert.Equal(t, p.UserID, detail.Owner.ID)
	require.Len(t, detail.Songs, 2)
	assert.Equal(t, songs[0].ID, detail.Songs[0].ID)
	assert.Equal(t, 1, detail.Songs[0].Position)
	assert.Equal(t, songs[2].ID, detail.Songs[1].ID)
	assert.Equal(t, 2, detail.Songs[1].Position)
}

func TestDetail_EmptyRelationsAreNotNil(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	u := ts.user(t, "empty@example.com")
	p := ts.playlist(t, u.ID)
	a := ts.artist(t, "Quiet")

	pd, err := ts.details.Playlist(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, pd.Songs)
	assert.Empty(t, pd.Songs)

	ad, err := ts.details.Artist(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, ad.Songs)
	assert.NotNil(t, ad.Albums)
}

func TestDetail_Song(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	a1 := ts.artist(t, "Lead")
	a2 := ts.artist(t, "Feature")
	album, err := ts.albums.Create(ctx, CreateAlbumInput{Title: "Collab", ArtistIDs: []int64{a1.ID}})
	require.NoError(t, err)
	song, err := ts.songs.Create(ctx, CreateSongInput{
		Title:     "Together",
		Duration:  240,
		AlbumID:   &album.ID,
		ArtistIDs: []int64{a1.ID, a2.ID},
	})
	require.NoError(t, err)

	detail, err := ts.details.Song(ctx, song.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Artists, 2)
	require.NotNil(t, detail.Album)
	assert.Equal(t, album.ID, detail.Album.ID)

	ad, err := ts.details.Artist(ctx, a2.ID)
	require.NoError(t, err)
	require.Len(t, ad.Songs, 1)
	assert.Empty(t, ad.Albums)

	albumDetail, err := ts.details.Album(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, albumDetail.Songs, 1)
	assert.Equal(t, song.ID, albumDetail.Songs[0].ID)
}

func TestDetail_User(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	u := ts.user(t, "owner@example.com")
	ts.playlist(t, u.ID)
	ts.playlist(t, u.ID)

	detail, err := ts.details.User(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, detail.Email)
	assert.Len(t, detail.Playlists, 2)
}

func TestDetail_NotFoundCarriesEntity(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		get  func() error
		want domainerrors.Entity
	}{
		{"playlist", func() error { _, err := ts.details.Playlist(ctx, 1); return err }, domainerrors.EntityPlaylist},
		{"song", func() error { _, err := ts.details.Song(ctx, 1); return err }, domainerrors.EntitySong},
		{"artist", func() error { _, err := ts.details.Artist(ctx, 1); return err }, domainerrors.EntityArtist},
		{"album", func() error { _, err := ts.details.Album(ctx, 1); return err }, domainerrors.EntityAlbum},
		{"user", func() error { _, err := ts.details.User(ctx, 1); return err }, domainerrors.EntityUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var de *domainerrors.Error
			require.ErrorAs(t, tt.get(), &de)
			assert.Equal(t, domainerrors.CodeNotFound, de.Code)
			assert.Equal(t, tt.want, de.Entity)
		})
	}
}
