package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/catalog-server/internal/domain"
	"github.com/listenupapp/catalog-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create user",
		Description:   "Registers a user. Emails must be unique",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user with the playlists they own",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user",
		Tags:        []string{"Users"},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteUser",
		Method:        http.MethodDelete,
		Path:          "/api/v1/users/{id}",
		Summary:       "Delete user",
		Description:   "Deletes a user and every playlist they own",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/playlists",
		Summary:     "Get user playlists",
		Tags:        []string{"Users"},
	}, s.handleGetUserPlaylists)
}

// === DTOs ===

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name" minLength:"1" maxLength:"200" doc:"Display name"`
	Email string `json:"email" format:"email" maxLength:"320" doc:"Email address"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UpdateUserRequest is the request body for updating a user.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" minLength:"1" maxLength:"200" doc:"Display name"`
	Email *string `json:"email,omitempty" format:"email" maxLength:"320" doc:"Email address"`
}

// UpdateUserInput wraps the update user request for Huma.
type UpdateUserInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"User ID"`
	Body UpdateUserRequest
}

// UserIDInput identifies a user by path.
type UserIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"User ID"`
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body domain.User
}

// UserDetailOutput wraps a user detail for Huma.
type UserDetailOutput struct {
	Body domain.UserDetail
}

// ListUsersOutput wraps a list of users for Huma.
type ListUsersOutput struct {
	Body []domain.User
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	user, err := s.services.User.Create(ctx, service.CreateUserInput{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *user}, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.services.User.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListUsersOutput{Body: orEmpty(users)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserDetailOutput, error) {
	detail, err := s.services.Detail.User(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserDetailOutput{Body: *detail}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	user, err := s.services.User.Update(ctx, input.ID, service.UpdateUserInput{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *user}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *UserIDInput) (*struct{}, error) {
	if err := s.services.User.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleGetUserPlaylists(ctx context.Context, input *UserIDInput) (*ListPlaylistsOutput, error) {
	playlists, err := s.services.Playlist.ForUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListPlaylistsOutput{Body: orEmpty(playlists)}, nil
}
