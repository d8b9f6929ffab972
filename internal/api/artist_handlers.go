package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/service"
)

func (s *Server) registerArtistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createArtist",
		Method:        http.MethodPost,
		Path:          "/api/v1/artists",
		Summary:       "Create artist",
		Tags:          []string{"Artists"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateArtist)

	huma.Register(s.api, huma.Operation{
		OperationID: "listArtists",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists",
		Summary:     "List artists",
		Description: "Returns all artists ordered by name",
		Tags:        []string{"Artists"},
	}, s.handleListArtists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArtist",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/{id}",
		Summary:     "Get artist",
		Description: "Returns an artist with their songs and albums",
		Tags:        []string{"Artists"},
	}, s.handleGetArtist)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateArtist",
		Method:      http.MethodPatch,
		Path:        "/api/v1/artists/{id}",
		Summary:     "Update artist",
		Description: "Updates the given fields. An empty string clears bio or image_url",
		Tags:        []string{"Artists"},
	}, s.handleUpdateArtist)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteArtist",
		Method:        http.MethodDelete,
		Path:          "/api/v1/artists/{id}",
		Summary:       "Delete artist",
		Tags:          []string{"Artists"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteArtist)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArtistSongs",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/{id}/songs",
		Summary:     "Get artist songs",
		Tags:        []string{"Artists"},
	}, s.handleGetArtistSongs)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArtistAlbums",
		Method:      http.MethodGet,
		Path:        "/api/v1/artists/{id}/albums",
		Summary:     "Get artist albums",
		Tags:        []string{"Artists"},
	}, s.handleGetArtistAlbums)
}

// === DTOs ===

// CreateArtistRequest is the request body for creating an artist.
type CreateArtistRequest struct {
	Name     string  `json:"name" minLength:"1" maxLength:"200" doc:"Artist name"`
	Bio      *string `json:"bio,omitempty" maxLength:"5000" doc:"Biography"`
	ImageURL *string `json:"image_url,omitempty" doc:"Portrait URL"`
}

// CreateArtistInput wraps the create artist request for Huma.
type CreateArtistInput struct {
	Body CreateArtistRequest
}

// UpdateArtistRequest is the request body for updating an artist.
type UpdateArtistRequest struct {
	Name     *string `json:"name,omitempty" minLength:"1" maxLength:"200" doc:"Artist name"`
	Bio      *string `json:"bio,omitempty" maxLength:"5000" doc:"Biography"`
	ImageURL *string `json:"image_url,omitempty" doc:"Portrait URL"`
}

// UpdateArtistInput wraps the update artist request for Huma.
type UpdateArtistInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Artist ID"`
	Body UpdateArtistRequest
}

// ArtistIDInput identifies an artist by path.
type ArtistIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Artist ID"`
}

// ArtistOutput wraps an artist for Huma.
type ArtistOutput struct {
	Body domain.Artist
}

// ArtistDetailOutput wraps an artist detail for Huma.
type ArtistDetailOutput struct {
	Body domain.ArtistDetail
}

// ListArtistsOutput wraps a list of artists for Huma.
type ListArtistsOutput struct {
	Body []domain.Artist
}

// === Handlers ===

func (s *Server) handleCreateArtist(ctx context.Context, input *CreateArtistInput) (*ArtistOutput, error) {
	artist, err := s.services.Artist.Create(ctx, service.CreateArtistInput{
		Name:     input.Body.Name,
		Bio:      input.Body.Bio,
		ImageURL: input.Body.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &ArtistOutput{Body: *artist}, nil
}

func (s *Server) handleListArtists(ctx context.Context, _ *struct{}) (*ListArtistsOutput, error) {
	artists, err := s.services.Artist.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListArtistsOutput{Body: orEmpty(artists)}, nil
}

func (s *Server) handleGetArtist(ctx context.Context, input *ArtistIDInput) (*ArtistDetailOutput, error) {
	detail, err := s.services.Detail.Artist(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ArtistDetailOutput{Body: *detail}, nil
}

func (s *Server) handleUpdateArtist(ctx context.Context, input *UpdateArtistInput) (*ArtistOutput, error) {
	artist, err := s.services.Artist.Update(ctx, input.ID, service.UpdateArtistInput{
		Name:     input.Body.Name,
		Bio:      input.Body.Bio,
		ImageURL: input.Body.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &ArtistOutput{Body: *artist}, nil
}

func (s *Server) handleDeleteArtist(ctx context.Context, input *ArtistIDInput) (*struct{}, error) {
	if err := s.services.Artist.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleGetArtistSongs(ctx context.Context, input *ArtistIDInput) (*ListSongsOutput, error) {
	songs, err := s.services.Artist.Songs(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListSongsOutput{Body: orEmpty(songs)}, nil
}

func (s *Server) handleGetArtistAlbums(ctx context.Context, input *ArtistIDInput) (*ListAlbumsOutput, error) {
	albums, err := s.services.Artist.Albums(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListAlbumsOutput{Body: orEmpty(albums)}, nil
}
