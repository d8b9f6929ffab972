package api

import (
	"github.com/listenupapp/catalog-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	User       *service.UserService
	Artist     *service.ArtistService
	Album      *service.AlbumService
	Song       *service.SongService
	Playlist   *service.PlaylistService
	Membership *service.MembershipService // Playlist song ordering
	Detail     *service.DetailService     // Aggregates for GET /{id}
}
