package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/store"
)

func TestMembershipTx_Primitives(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := newFixture(t, s, 3)
	appendSongs(t, s, f.playlist.ID, f.songs[0], f.songs[1])

	err := s.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.PlaylistExists(ctx, f.playlist.ID)
		if err != nil || !ok {
			t.Errorf("PlaylistExists = %v, %v", ok, err)
		}
		ok, err = tx.SongExists(ctx, 999)
		if err != nil || ok {
			t.Errorf("SongExists(999) = %v, %v", ok, err)
		}

		n, err := tx.CountMembers(ctx, f.playlist.ID)
		if err != nil || n != 2 {
			t.Errorf("CountMembers = %d, %v", n, err)
		}

		pos, err := tx.MembershipPosition(ctx, f.playlist.ID, f.songs[1].ID)
		if err != nil || pos != 2 {
			t.Errorf("MembershipPosition = %d, %v", pos, err)
		}
		if _, err := tx.MembershipPosition(ctx, f.playlist.ID, f.songs[2].ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-member, got %v", err)
		}

		// Make room at 1 and put the third song there.
		if err := tx.ShiftFrom(ctx, f.playlist.ID, 1, 1); err != nil {
			return err
		}
		return tx.InsertMembership(ctx, &domain.PlaylistSong{
			PlaylistID: f.playlist.ID, SongID: f.songs[2].ID, Position: 1,
		})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	got := positionsBySong(t, s, f.playlist.ID)
	want := map[int64]int{f.songs[2].ID: 1, f.songs[0].ID: 2, f.songs[1].ID: 3}
	for id, p := range want {
		if got[id] != p {
			t.Errorf("song %d at %d, want %d", id, got[id], p)
		}
	}
}

func TestMembershipTx_DuplicateInsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := newFixture(t, s, 1)
	appendSongs(t, s, f.playlist.ID, f.songs[0])

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.InsertMembership(ctx, &domain.PlaylistSong{
			PlaylistID: f.playlist.ID, SongID: f.songs[0].ID, Position: 2,
		})
	})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMembershipTx_DeleteAndSetPosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := newFixture(t, s, 2)
	appendSongs(t, s, f.playlist.ID, f.songs...)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.SetPosition(ctx, f.playlist.ID, f.songs[0].ID, 9); err != nil {
			return err
		}
		if err := tx.DeleteMembership(ctx, f.playlist.ID, f.songs[1].ID); err != nil {
			return err
		}
		if err := tx.DeleteMembership(ctx, f.playlist.ID, f.songs[1].ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
		if err := tx.SetPosition(ctx, f.playlist.ID, 999, 1); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("set position on non-member: expected ErrNotFound, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	got := positionsBySong(t, s, f.playlist.ID)
	if len(got) != 1 || got[f.songs[0].ID] != 9 {
		t.Errorf("unexpected positions: %v", got)
	}
}

func TestListPlaylistSongs_Order(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := newFixture(t, s, 3)
	appendSongs(t, s, f.playlist.ID, f.songs[2], f.songs[0], f.songs[1])

	entries, err := s.ListPlaylistSongs(ctx, f.playlist.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantOrder := []int64{f.songs[2].ID, f.songs[0].ID, f.songs[1].ID}
	for i, e := range entries {
		if e.ID != wantOrder[i] || e.Position != i+1 {
			t.Errorf("entry %d = song %d @%d, want song %d @%d", i, e.ID, e.Position, wantOrder[i], i+1)
		}
		if e.AddedAt.IsZero() || e.Title == "" {
			t.Errorf("entry %d missing joined fields: %+v", i, e)
		}
	}
}

func TestDeleteSong_CompactsEveryPlaylist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := newFixture(t, s, 3)
	a, b, c := f.songs[0], f.songs[1], f.songs[2]

	second := &domain.Playlist{Name: "Other", UserID: f.user.ID, IsPublic: true}
	if err := s.CreatePlaylist(ctx, second); err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	appendSongs(t, s, f.playlist.ID, a, b, c) // B at 2
	appendSongs(t, s, second.ID, b, c, a)     // B at 1

	if err := s.DeleteSong(ctx, b.ID); err != nil {
		t.Fatalf("delete song: %v", err)
	}

	first := positionsBySong(t, s, f.playlist.ID)
	if len(first) != 2 || first[a.ID] != 1 || first[c.ID] != 2 {
		t.Errorf("first playlist not compacted: %v", first)
	}

	other := positionsBySong(t, s, second.ID)
	if len(other) != 2 || other[c.ID] != 1 || other[a.ID] != 2 {
		t.Errorf("second playlist not compacted: %v", other)
	}

	if err := s.DeleteSong(ctx, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestDeletePlaylist_CascadesMemberships(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := newFixture(t, s, 2)
	appendSongs(t, s, f.playlist.ID, f.songs...)

	if err := s.DeletePlaylist(ctx, f.playlist.ID); err != nil {
		t.Fatalf("delete playlist: %v", err)
	}

	var rows int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM playlist_songs WHERE playlist_id = ?", f.playlist.ID).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 0 {
		t.Errorf("expected memberships removed, %d left", rows)
	}
}
