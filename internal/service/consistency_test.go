package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/catalog-server/internal/domain"
	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
	"github.com/listenupapp/catalog-server/internal/store"
	"github.com/listenupapp/catalog-server/internal/store/sqlite"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// vanishingArtistStore deletes an artist right after the service has checked
// that it exists, the way a concurrent DELETE /artists/{id} would.
type vanishingArtistStore struct {
	*sqlite.Store
	victim int64
}

func (s *vanishingArtistStore) MissingArtists(ctx context.Context, ids []int64) ([]int64, error) {
	missing, err := s.Store.MissingArtists(ctx, ids)
	if err != nil || s.victim == 0 {
		return missing, err
	}
	return missing, s.Store.DeleteArtist(ctx, s.victim)
}

// hookedStore runs afterPlaylistRead once a transaction has loaded a playlist.
type hookedStore struct {
	*sqlite.Store
	afterPlaylistRead func()
}

func (s *hookedStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(&hookedTx{Tx: tx, after: s.afterPlaylistRead})
	})
}

type hookedTx struct {
	store.Tx
	after func()
}

func (t *hookedTx) GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error) {
	p, err := t.Tx.GetPlaylist(ctx, id)
	if t.after != nil {
		t.after()
	}
	return p, err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSongService_UpdateIsAtomicWhenCreditWriteFails(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	original := ts.artist(t, "Original")
	guest := ts.artist(t, "Guest")
	song := ts.song(t, "Old", original.ID)

	st := &vanishingArtistStore{Store: ts.store, victim: guest.ID}
	songs := NewSongService(st, validation.New(), discardLogger())

	_, err := songs.Update(ctx, song.ID, UpdateSongInput{
		Title:     ptr("New"),
		ArtistIDs: &[]int64{guest.ID},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err := ts.songs.Get(ctx, song.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Title)

	detail, err := ts.details.Song(ctx, song.ID)
	require.NoError(t, err)
	require.Len(t, detail.Artists, 1)
	assert.Equal(t, original.ID, detail.Artists[0].ID)
}

func TestAlbumService_UpdateIsAtomicWhenCreditWriteFails(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	original := ts.artist(t, "Original")
	guest := ts.artist(t, "Guest")
	album, err := ts.albums.Create(ctx, CreateAlbumInput{Title: "Old", ArtistIDs: []int64{original.ID}})
	require.NoError(t, err)

	st := &vanishingArtistStore{Store: ts.store, victim: guest.ID}
	albums := NewAlbumService(st, validation.New(), discardLogger())

	_, err = albums.Update(ctx, album.ID, UpdateAlbumInput{
		Title:     ptr("New"),
		ArtistIDs: &[]int64{guest.ID},
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	detail, err := ts.details.Album(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", detail.Title)
	require.Len(t, detail.Artists, 1)
	assert.Equal(t, original.ID, detail.Artists[0].ID)
}

func TestDetail_PlaylistIsOneSnapshot(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	p, songs := playlistFixture(t, ts, 2)
	for _, s := range songs {
		_, err := ts.membership.AddSong(ctx, p.ID, s.ID, nil)
		require.NoError(t, err)
	}

	deleted := make(chan error, 1)
	var once bool
	st := &hookedStore{Store: ts.store, afterPlaylistRead: func() {
		if once {
			return
		}
		once = true
		go func() { deleted <- ts.store.DeletePlaylist(context.Background(), p.ID) }()
	}}
	details := NewDetailService(st, discardLogger())

	detail, err := details.Playlist(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, detail.Owner.ID)
	require.Len(t, detail.Songs, 2)
	assert.Equal(t, []int{1, 2}, domain.Positions(detail.Songs))

	require.NoError(t, <-deleted)

	_, err = details.Playlist(ctx, p.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
