package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/service"
)

func (s *Server) registerAlbumRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createAlbum",
		Method:        http.MethodPost,
		Path:          "/api/v1/albums",
		Summary:       "Create album",
		Description:   "Creates an album credited to the given artists",
		Tags:          []string{"Albums"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAlbums",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums",
		Summary:     "List albums",
		Tags:        []string{"Albums"},
	}, s.handleListAlbums)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAlbum",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Get album",
		Description: "Returns an album with its artists and songs",
		Tags:        []string{"Albums"},
	}, s.handleGetAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAlbum",
		Method:      http.MethodPatch,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Update album",
		Description: "Updates the given fields. artist_ids replaces the credited artists",
		Tags:        []string{"Albums"},
	}, s.handleUpdateAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteAlbum",
		Method:        http.MethodDelete,
		Path:          "/api/v1/albums/{id}",
		Summary:       "Delete album",
		Description:   "Deletes an album. Its songs are kept without an album",
		Tags:          []string{"Albums"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAlbumSongs",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums/{id}/songs",
		Summary:     "Get album songs",
		Tags:        []string{"Albums"},
	}, s.handleGetAlbumSongs)
}

// === DTOs ===

// CreateAlbumRequest is the request body for creating an album.
type CreateAlbumRequest struct {
	Title       string  `json:"title" minLength:"1" maxLength:"300" doc:"Album title"`
	ReleaseYear *int    `json:"release_year,omitempty" minimum:"1000" maximum:"9999" doc:"Year of release"`
	CoverArtURL *string `json:"cover_art_url,omitempty" doc:"Cover art URL"`
	ArtistIDs   []int64 `json:"artist_ids,omitempty" uniqueItems:"true" doc:"Credited artist IDs"`
}

// CreateAlbumInput wraps the create album request for Huma.
type CreateAlbumInput struct {
	Body CreateAlbumRequest
}

// UpdateAlbumRequest is the request body for updating an album.
type UpdateAlbumRequest struct {
	Title       *string  `json:"title,omitempty" minLength:"1" maxLength:"300" doc:"Album title"`
	ReleaseYear *int     `json:"release_year,omitempty" minimum:"0" maximum:"9999" doc:"Year of release, 0 clears it"`
	CoverArtURL *string  `json:"cover_art_url,omitempty" doc:"Cover art URL, empty clears it"`
	ArtistIDs   *[]int64 `json:"artist_ids,omitempty" doc:"Replacement artist IDs"`
}

// UpdateAlbumInput wraps the update album request for Huma.
type UpdateAlbumInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Album ID"`
	Body UpdateAlbumRequest
}

// AlbumIDInput identifies an album by path.
type AlbumIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Album ID"`
}

// AlbumOutput wraps an album for Huma.
type AlbumOutput struct {
	Body domain.Album
}

// AlbumDetailOutput wraps an album detail for Huma.
type AlbumDetailOutput struct {
	Body domain.AlbumDetail
}

// ListAlbumsOutput wraps a list of albums for Huma.
type ListAlbumsOutput struct {
	Body []domain.Album
}

// === Handlers ===

func (s *Server) handleCreateAlbum(ctx context.Context, input *CreateAlbumInput) (*AlbumOutput, error) {
	album, err := s.services.Album.Create(ctx, service.CreateAlbumInput{
		Title:       input.Body.Title,
		ReleaseYear: input.Body.ReleaseYear,
		CoverArtURL: input.Body.CoverArtURL,
		ArtistIDs:   input.Body.ArtistIDs,
	})
	if err != nil {
		return nil, err
	}
	return &AlbumOutput{Body: *album}, nil
}

func (s *Server) handleListAlbums(ctx context.Context, _ *struct{}) (*ListAlbumsOutput, error) {
	albums, err := s.services.Album.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListAlbumsOutput{Body: orEmpty(albums)}, nil
}

func (s *Server) handleGetAlbum(ctx context.Context, input *AlbumIDInput) (*AlbumDetailOutput, error) {
	detail, err := s.services.Detail.Album(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AlbumDetailOutput{Body: *detail}, nil
}

func (s *Server) handleUpdateAlbum(ctx context.Context, input *UpdateAlbumInput) (*AlbumOutput, error) {
	album, err := s.services.Album.Update(ctx, input.ID, service.UpdateAlbumInput{
		Title:       input.Body.Title,
		ReleaseYear: input.Body.ReleaseYear,
		CoverArtURL: input.Body.CoverArtURL,
		ArtistIDs:   input.Body.ArtistIDs,
	})
	if err != nil {
		return nil, err
	}
	return &AlbumOutput{Body: *album}, nil
}

func (s *Server) handleDeleteAlbum(ctx context.Context, input *AlbumIDInput) (*struct{}, error) {
	if err := s.services.Album.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleGetAlbumSongs(ctx context.Context, input *AlbumIDInput) (*ListSongsOutput, error) {
	songs, err := s.services.Album.Songs(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListSongsOutput{Body: orEmpty(songs)}, nil
}
