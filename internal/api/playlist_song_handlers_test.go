package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlaylistSong_AppendAndInsert(t *testing.T) {
	ts := setupTestServer(t, nil)
	playlistID, songs := ts.seedPlaylist(t, 4)
	path := fmt.Sprintf("/api/v1/playlists/%d/songs", playlistID)

	for i, songID := range songs[:3] {
		resp := ts.api.Post(path, map[string]any{"song_id": songID})
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
		assert.Equal(t, i+1, decode[PositionResponse](t, resp.Body.Bytes()).Data.Position)
	}

	resp := ts.api.Post(path, map[string]any{"song_id": songs[3], "position": 2})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, 2, decode[PositionResponse](t, resp.Body.Bytes()).Data.Position)

	ids, positions := ts.playlistOrder(t, playlistID)
	assert.Equal(t, []int64{songs[0], songs[3], songs[1], songs[2]}, ids)
	assert.Equal(t, []int{1, 2, 3, 4}, positions)
}

func TestAddPlaylistSong_Errors(t *testing.T) {
	ts := setupTestServer(t, nil)
	playlistID, songs := ts.seedPlaylist(t, 1)
	path := fmt.Sprintf("/api/v1/playlists/%d/songs", playlistID)

	resp := ts.api.Post(path, map[string]any{"song_id": songs[0]})
	require.Equal(t, http.StatusCreated, resp.Code)

	tests := []struct {
		name    string
		path    string
		body    map[string]any
		status  int
		code    string
		message string
	}{
		{
			name:    "duplicate",
			path:    path,
			body:    map[string]any{"song_id": songs[0]},
			status:  http.StatusConflict,
			code:    "CONFLICT",
			message: "Song already in playlist",
		},
		{
			name:    "unknown playlist",
			path:    "/api/v1/playlists/999/songs",
			body:    map[string]any{"song_id": songs[0]},
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Playlist not found",
		},
		{
			name:    "unknown song",
			path:    path,
			body:    map[string]any{"song_id": 999},
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Song not found",
		},
		{
			name:   "missing song_id",
			path:   path,
			body:   map[string]any{"position": 1},
			status: http.StatusBadRequest,
			code:   "VALIDATION",
		},
		{
			name:   "zero position",
			path:   path,
			body:   map[string]any{"song_id": songs[0], "position": 0},
			status: http.StatusBadRequest,
			code:   "VALIDATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post(tt.path, tt.body)
			require.Equal(t, tt.status, resp.Code, resp.Body.String())

			env := decode[any](t, resp.Body.Bytes())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Error.Message)
			}
		})
	}
}

func TestRemovePlaylistSong(t *testing.T) {
	ts := setupTestServer(t, nil)
	playlistID, songs := ts.seedPlaylist(t, 3)
	path := fmt.Sprintf("/api/v1/playlists/%d/songs", playlistID)

	for _, songID := range songs {
		resp := ts.api.Post(path, map[string]any{"song_id": songID})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.api.Delete(fmt.Sprintf("%s/%d", path, songs[0]))
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	ids, positions := ts.playlistOrder(t, playlistID)
	assert.Equal(t, []int64{songs[1], songs[2]}, ids)
	assert.Equal(t, []int{1, 2}, positions)

	resp = ts.api.Delete(fmt.Sprintf("%s/%d", path, songs[0]))
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Song not found in playlist", decode[any](t, resp.Body.Bytes()).Error.Message)
}

func TestReorderPlaylistSong(t *testing.T) {
	ts := setupTestServer(t, nil)
	playlistID, songs := ts.seedPlaylist(t, 1)
	path := fmt.Sprintf("/api/v1/playlists/%d/songs", playlistID)

	resp := ts.api.Post(path, map[string]any{"song_id": songs[0]})
	require.Equal(t, http.StatusCreated, resp.Code)

	positionPath := fmt.Sprintf("%s/%d/position", path, songs[0])
	resp = ts.api.Put(positionPath, map[string]any{"position": 5})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 5, decode[PositionResponse](t, resp.Body.Bytes()).Data.Position)

	_, positions := ts.playlistOrder(t, playlistID)
	assert.Equal(t, []int{5}, positions)

	resp = ts.api.Put(positionPath, map[string]any{"position": 0})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Put(fmt.Sprintf("%s/%d/position", path, 999), map[string]any{"position": 1})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetPlaylist_Detail(t *testing.T) {
	ts := setupTestServer(t, nil)
	playlistID, songs := ts.seedPlaylist(t, 2)
	path := fmt.Sprintf("/api/v1/playlists/%d/songs", playlistID)

	resp := ts.api.Post(path, map[string]any{"song_id": songs[1]})
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = ts.api.Post(path, map[string]any{"song_id": songs[0], "position": 1})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get(fmt.Sprintf("/api/v1/playlists/%d", playlistID))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	type detailBody struct {
		ID       int64       `json:"id"`
		Name     string      `json:"name"`
		IsPublic bool        `json:"is_public"`
		Owner    idBody      `json:"owner"`
		Songs    []entryBody `json:"songs"`
	}
	detail := decode[detailBody](t, resp.Body.Bytes()).Data
	assert.Equal(t, playlistID, detail.ID)
	assert.True(t, detail.IsPublic)
	assert.NotZero(t, detail.Owner.ID)
	require.Len(t, detail.Songs, 2)
	assert.Equal(t, songs[0], detail.Songs[0].ID)
	assert.Equal(t, 1, detail.Songs[0].Position)
	assert.Equal(t, songs[1], detail.Songs[1].ID)
	assert.Equal(t, 2, detail.Songs[1].Position)
}

func TestDeleteSong_ClosesPlaylistGap(t *testing.T) {
	ts := setupTestServer(t, nil)
	playlistID, songs := ts.seedPlaylist(t, 3)
	path := fmt.Sprintf("/api/v1/playlists/%d/songs", playlistID)

	for _, songID := range songs {
		resp := ts.api.Post(path, map[string]any{"song_id": songID})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.api.Delete(fmt.Sprintf("/api/v1/songs/%d", songs[1]))
	require.Equal(t, http.StatusNoContent, resp.Code)

	ids, positions := ts.playlistOrder(t, playlistID)
	assert.Equal(t, []int64{songs[0], songs[2]}, ids)
	assert.Equal(t, []int{1, 2}, positions)
}
