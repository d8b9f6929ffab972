package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/catalog-server/internal/domain"
)

func (s *Server) registerPlaylistSongRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPlaylistSongs",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/{id}/songs",
		Summary:     "List playlist songs",
		Description: "Returns the playlist's songs ordered by position",
		Tags:        []string{"Playlist Songs"},
	}, s.handleListPlaylistSongs)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addPlaylistSong",
		Method:        http.MethodPost,
		Path:          "/api/v1/playlists/{id}/songs",
		Summary:       "Add song to playlist",
		Description:   "Inserts a song at position, shifting later songs down. Without position the song is appended",
		Tags:          []string{"Playlist Songs"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddPlaylistSong)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removePlaylistSong",
		Method:        http.MethodDelete,
		Path:          "/api/v1/playlists/{id}/songs/{songId}",
		Summary:       "Remove song from playlist",
		Description:   "Removes a song and moves later songs up to close the gap",
		Tags:          []string{"Playlist Songs"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemovePlaylistSong)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderPlaylistSong",
		Method:      http.MethodPut,
		Path:        "/api/v1/playlists/{id}/songs/{songId}/position",
		Summary:     "Move playlist song",
		Description: "Sets the song's position. Other songs keep their positions",
		Tags:        []string{"Playlist Songs"},
	}, s.handleReorderPlaylistSong)
}

// === DTOs ===

// AddPlaylistSongRequest is the request body for adding a song to a playlist.
type AddPlaylistSongRequest struct {
	SongID   int64 `json:"song_id" minimum:"1" doc:"Song to add"`
	Position *int  `json:"position,omitempty" minimum:"1" doc:"1-based target position, defaults to the end"`
}

// AddPlaylistSongInput wraps the add song request for Huma.
type AddPlaylistSongInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Playlist ID"`
	Body AddPlaylistSongRequest
}

// PlaylistSongInput identifies one membership by path.
type PlaylistSongInput struct {
	ID     int64 `path:"id" minimum:"1" doc:"Playlist ID"`
	SongID int64 `path:"songId" minimum:"1" doc:"Song ID"`
}

// ReorderPlaylistSongRequest is the request body for moving a song.
type ReorderPlaylistSongRequest struct {
	Position int `json:"position" minimum:"1" doc:"New 1-based position"`
}

// ReorderPlaylistSongInput wraps the reorder request for Huma.
type ReorderPlaylistSongInput struct {
	ID     int64 `path:"id" minimum:"1" doc:"Playlist ID"`
	SongID int64 `path:"songId" minimum:"1" doc:"Song ID"`
	Body   ReorderPlaylistSongRequest
}

// PositionResponse reports where a song sits after a membership change.
type PositionResponse struct {
	Position int `json:"position" doc:"1-based position"`
}

// PositionOutput wraps a position response for Huma.
type PositionOutput struct {
	Body PositionResponse
}

// ListPlaylistSongsOutput wraps the ordered songs of a playlist for Huma.
type ListPlaylistSongsOutput struct {
	Body []domain.PlaylistEntry
}

// === Handlers ===

func (s *Server) handleListPlaylistSongs(ctx context.Context, input *PlaylistIDInput) (*ListPlaylistSongsOutput, error) {
	entries, err := s.services.Membership.ListSongs(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListPlaylistSongsOutput{Body: orEmpty(entries)}, nil
}

func (s *Server) handleAddPlaylistSong(ctx context.Context, input *AddPlaylistSongInput) (*PositionOutput, error) {
	pos, err := s.services.Membership.AddSong(ctx, input.ID, input.Body.SongID, input.Body.Position)
	if err != nil {
		return nil, err
	}
	return &PositionOutput{Body: PositionResponse{Position: pos}}, nil
}

func (s *Server) handleRemovePlaylistSong(ctx context.Context, input *PlaylistSongInput) (*struct{}, error) {
	if err := s.services.Membership.RemoveSong(ctx, input.ID, input.SongID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleReorderPlaylistSong(ctx context.Context, input *ReorderPlaylistSongInput) (*PositionOutput, error) {
	pos, err := s.services.Membership.ReorderSong(ctx, input.ID, input.SongID, input.Body.Position)
	if err != nil {
		return nil, err
	}
	return &PositionOutput{Body: PositionResponse{Position: pos}}, nil
}
