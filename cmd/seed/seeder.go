package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	domainerrors "github.com/listenupapp/catalog-server/internal/errors"
	"github.com/listenupapp/catalog-server/internal/service"
	"github.com/listenupapp/catalog-server/internal/store"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// seedStats counts what a run created.
type seedStats struct {
	Artists, Albums, Songs, Users, Playlists int
}

type seeder struct {
	artists    *service.ArtistService
	albums     *service.AlbumService
	songs      *service.SongService
	users      *service.UserService
	playlists  *service.PlaylistService
	membership *service.MembershipService

	playlistsPerUser int
	songsPerPlaylist int
	rng              *rand.Rand
}

func newSeeder(st store.Store, logger *slog.Logger, playlistsPerUser, songsPerPlaylist int) *seeder {
	v := validation.New()
	return &seeder{
		artists:          service.NewArtistService(st, v, logger),
		albums:           service.NewAlbumService(st, v, logger),
		songs:            service.NewSongService(st, v, logger),
		users:            service.NewUserService(st, v, logger),
		playlists:        service.NewPlaylistService(st, v, logger),
		membership:       service.NewMembershipService(st, logger),
		playlistsPerUser: playlistsPerUser,
		songsPerPlaylist: songsPerPlaylist,
		rng:              rand.New(rand.NewPCG(1, 2)),
	}
}

func (s *seeder) seed(ctx context.Context, f *fixture) (seedStats, error) {
	var stats seedStats

	songIDs, err := s.seedCatalog(ctx, f.Artists, &stats)
	if err != nil {
		return stats, err
	}

	for _, u := range f.Users {
		user, err := s.users.Create(ctx, service.CreateUserInput{Name: u.Name, Email: u.Email})
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) && domainErr.Code == domainerrors.CodeConflict {
			// Re-running against the same database keeps existing users.
			fmt.Printf("  skipping existing user %s\n", u.Email)
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		stats.Users++

		for p := range s.playlistsPerUser {
			if err := s.seedPlaylist(ctx, user.ID, fmt.Sprintf("%s's mix #%d", u.Name, p+1), p%2 == 0, songIDs); err != nil {
				return stats, err
			}
			stats.Playlists++
		}
	}

	return stats, nil
}

func (s *seeder) seedCatalog(ctx context.Context, artists []artistFixture, stats *seedStats) ([]int64, error) {
	var ids []int64

	for _, a := range artists {
		in := service.CreateArtistInput{Name: a.Name}
		if a.Bio != "" {
			in.Bio = &a.Bio
		}
		artist, err := s.artists.Create(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("create artist %s: %w", a.Name, err)
		}
		stats.Artists++

		for _, al := range a.Albums {
			albumIn := service.CreateAlbumInput{Title: al.Title, ArtistIDs: []int64{artist.ID}}
			if al.ReleaseYear != 0 {
				year := al.ReleaseYear
				albumIn.ReleaseYear = &year
			}
			album, err := s.albums.Create(ctx, albumIn)
			if err != nil {
				return nil, fmt.Errorf("create album %s: %w", al.Title, err)
			}
			stats.Albums++

			for _, sf := range al.Songs {
				albumID := album.ID
				song, err := s.songs.Create(ctx, service.CreateSongInput{
					Title:     sf.Title,
					Duration:  sf.Duration,
					AlbumID:   &albumID,
					ArtistIDs: []int64{artist.ID},
				})
				if err != nil {
					return nil, fmt.Errorf("create song %s: %w", sf.Title, err)
				}
				stats.Songs++
				ids = append(ids, song.ID)
			}
		}
	}

	return ids, nil
}

func (s *seeder) seedPlaylist(ctx context.Context, userID int64, name string, public bool, songIDs []int64) error {
	playlist, err := s.playlists.Create(ctx, service.CreatePlaylistInput{
		Name:     name,
		UserID:   userID,
		IsPublic: &public,
	})
	if err != nil {
		return fmt.Errorf("create playlist %s: %w", name, err)
	}

	picks := s.rng.Perm(len(songIDs))
	n := min(s.songsPerPlaylist, len(picks))
	for _, idx := range picks[:n] {
		// Some songs go to the front so later entries get shifted.
		var pos *int
		if s.rng.IntN(3) == 0 {
			one := 1
			pos = &one
		}
		if _, err := s.membership.AddSong(ctx, playlist.ID, songIDs[idx], pos); err != nil {
			return fmt.Errorf("add song to %s: %w", name, err)
		}
	}

	fmt.Printf("  %q with %d songs\n", name, n)
	return nil
}
