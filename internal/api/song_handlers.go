package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/service"
)

func (s *Server) registerSongRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createSong",
		Method:        http.MethodPost,
		Path:          "/api/v1/songs",
		Summary:       "Create song",
		Description:   "Creates a song credited to at least one artist",
		Tags:          []string{"Songs"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateSong)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSongs",
		Method:      http.MethodGet,
		Path:        "/api/v1/songs",
		Summary:     "List songs",
		Tags:        []string{"Songs"},
	}, s.handleListSongs)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSong",
		Method:      http.MethodGet,
		Path:        "/api/v1/songs/{id}",
		Summary:     "Get song",
		Description: "Returns a song with its artists and album",
		Tags:        []string{"Songs"},
	}, s.handleGetSong)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSong",
		Method:      http.MethodPatch,
		Path:        "/api/v1/songs/{id}",
		Summary:     "Update song",
		Description: "Updates the given fields. album_id 0 detaches the song from its album",
		Tags:        []string{"Songs"},
	}, s.handleUpdateSong)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteSong",
		Method:        http.MethodDelete,
		Path:          "/api/v1/songs/{id}",
		Summary:       "Delete song",
		Description:   "Deletes a song and removes it from every playlist",
		Tags:          []string{"Songs"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteSong)
}

// === DTOs ===

// CreateSongRequest is the request body for creating a song.
type CreateSongRequest struct {
	Title     string  `json:"title" minLength:"1" maxLength:"300" doc:"Song title"`
	Duration  int     `json:"duration" minimum:"1" doc:"Length in seconds"`
	FileURL   *string `json:"file_url,omitempty" doc:"Audio file URL"`
	AlbumID   *int64  `json:"album_id,omitempty" minimum:"1" doc:"Album ID"`
	ArtistIDs []int64 `json:"artist_ids" minItems:"1" uniqueItems:"true" doc:"Credited artist IDs"`
}

// CreateSongInput wraps the create song request for Huma.
type CreateSongInput struct {
	Body CreateSongRequest
}

// UpdateSongRequest is the request body for updating a song.
type UpdateSongRequest struct {
	Title     *string  `json:"title,omitempty" minLength:"1" maxLength:"300" doc:"Song title"`
	Duration  *int     `json:"duration,omitempty" minimum:"1" doc:"Length in seconds"`
	FileURL   *string  `json:"file_url,omitempty" doc:"Audio file URL, empty clears it"`
	AlbumID   *int64   `json:"album_id,omitempty" minimum:"0" doc:"Album ID, 0 clears it"`
	ArtistIDs *[]int64 `json:"artist_ids,omitempty" doc:"Replacement artist IDs"`
}

// UpdateSongInput wraps the update song request for Huma.
type UpdateSongInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Song ID"`
	Body UpdateSongRequest
}

// SongIDInput identifies a song by path.
type SongIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Song ID"`
}

// SongOutput wraps a song for Huma.
type SongOutput struct {
	Body domain.Song
}

// SongDetailOutput wraps a song detail for Huma.
type SongDetailOutput struct {
	Body domain.SongDetail
}

// ListSongsOutput wraps a list of songs for Huma.
type ListSongsOutput struct {
	Body []domain.Song
}

// === Handlers ===

func (s *Server) handleCreateSong(ctx context.Context, input *CreateSongInput) (*SongOutput, error) {
	song, err := s.services.Song.Create(ctx, service.CreateSongInput{
		Title:     input.Body.Title,
		Duration:  input.Body.Duration,
		FileURL:   input.Body.FileURL,
		AlbumID:   input.Body.AlbumID,
		ArtistIDs: input.Body.ArtistIDs,
	})
	if err != nil {
		return nil, err
	}
	return &SongOutput{Body: *song}, nil
}

func (s *Server) handleListSongs(ctx context.Context, _ *struct{}) (*ListSongsOutput, error) {
	songs, err := s.services.Song.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListSongsOutput{Body: orEmpty(songs)}, nil
}

func (s *Server) handleGetSong(ctx context.Context, input *SongIDInput) (*SongDetailOutput, error) {
	detail, err := s.services.Detail.Song(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SongDetailOutput{Body: *detail}, nil
}

func (s *Server) handleUpdateSong(ctx context.Context, input *UpdateSongInput) (*SongOutput, error) {
	song, err := s.services.Song.Update(ctx, input.ID, service.UpdateSongInput{
		Title:     input.Body.Title,
		Duration:  input.Body.Duration,
		FileURL:   input.Body.FileURL,
		AlbumID:   input.Body.AlbumID,
		ArtistIDs: input.Body.ArtistIDs,
	})
	if err != nil {
		return nil, err
	}
	return &SongOutput{Body: *song}, nil
}

func (s *Server) handleDeleteSong(ctx context.Context, input *SongIDInput) (*struct{}, error) {
	if err := s.services.Song.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
