package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/service"
)

func (s *Server) registerPlaylistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createPlaylist",
		Method:        http.MethodPost,
		Path:          "/api/v1/playlists",
		Summary:       "Create playlist",
		Description:   "Creates a playlist owned by user_id. Playlists are public unless is_public is false",
		Tags:          []string{"Playlists"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists",
		Summary:     "List playlists",
		Tags:        []string{"Playlists"},
	}, s.handleListPlaylists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlaylist",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/{id}",
		Summary:     "Get playlist",
		Description: "Returns a playlist with its owner and songs in position order",
		Tags:        []string{"Playlists"},
	}, s.handleGetPlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePlaylist",
		Method:      http.MethodPatch,
		Path:        "/api/v1/playlists/{id}",
		Summary:     "Update playlist",
		Tags:        []string{"Playlists"},
	}, s.handleUpdatePlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePlaylist",
		Method:        http.MethodDelete,
		Path:          "/api/v1/playlists/{id}",
		Summary:       "Delete playlist",
		Tags:          []string{"Playlists"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeletePlaylist)
}

// === DTOs ===

// CreatePlaylistRequest is the request body for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string  `json:"name" minLength:"1" maxLength:"200" doc:"Playlist name"`
	Description *string `json:"description,omitempty" maxLength:"2000" doc:"Description"`
	UserID      int64   `json:"user_id" minimum:"1" doc:"Owner user ID"`
	IsPublic    *bool   `json:"is_public,omitempty" doc:"Visible to other users, defaults to true"`
}

// CreatePlaylistInput wraps the create playlist request for Huma.
type CreatePlaylistInput struct {
	Body CreatePlaylistRequest
}

// UpdatePlaylistRequest is the request body for updating a playlist.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name,omitempty" minLength:"1" maxLength:"200" doc:"Playlist name"`
	Description *string `json:"description,omitempty" maxLength:"2000" doc:"Description, empty clears it"`
	IsPublic    *bool   `json:"is_public,omitempty" doc:"Visible to other users"`
}

// UpdatePlaylistInput wraps the update playlist request for Huma.
type UpdatePlaylistInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Playlist ID"`
	Body UpdatePlaylistRequest
}

// PlaylistIDInput identifies a playlist by path.
type PlaylistIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Playlist ID"`
}

// PlaylistOutput wraps a playlist for Huma.
type PlaylistOutput struct {
	Body domain.Playlist
}

// PlaylistDetailOutput wraps a playlist detail for Huma.
type PlaylistDetailOutput struct {
	Body domain.PlaylistDetail
}

// ListPlaylistsOutput wraps a list of playlists for Huma.
type ListPlaylistsOutput struct {
	Body []domain.Playlist
}

// === Handlers ===

func (s *Server) handleCreatePlaylist(ctx context.Context, input *CreatePlaylistInput) (*PlaylistOutput, error) {
	playlist, err := s.services.Playlist.Create(ctx, service.CreatePlaylistInput{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		UserID:      input.Body.UserID,
		IsPublic:    input.Body.IsPublic,
	})
	if err != nil {
		return nil, err
	}
	return &PlaylistOutput{Body: *playlist}, nil
}

func (s *Server) handleListPlaylists(ctx context.Context, _ *struct{}) (*ListPlaylistsOutput, error) {
	playlists, err := s.services.Playlist.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListPlaylistsOutput{Body: orEmpty(playlists)}, nil
}

func (s *Server) handleGetPlaylist(ctx context.Context, input *PlaylistIDInput) (*PlaylistDetailOutput, error) {
	detail, err := s.services.Detail.Playlist(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PlaylistDetailOutput{Body: *detail}, nil
}

func (s *Server) handleUpdatePlaylist(ctx context.Context, input *UpdatePlaylistInput) (*PlaylistOutput, error) {
	playlist, err := s.services.Playlist.Update(ctx, input.ID, service.UpdatePlaylistInput{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		IsPublic:    input.Body.IsPublic,
	})
	if err != nil {
		return nil, err
	}
	return &PlaylistOutput{Body: *playlist}, nil
}

func (s *Server) handleDeletePlaylist(ctx context.Context, input *PlaylistIDInput) (*struct{}, error) {
	if err := s.services.Playlist.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
