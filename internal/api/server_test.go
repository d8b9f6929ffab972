package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/catalog-server/internal/config"
	"github.com/listenupapp/catalog-server/internal/ratelimit"
	"github.com/listenupapp/catalog-server/internal/service"
	"github.com/listenupapp/catalog-server/internal/store/sqlite"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// testEnvelope decodes the response envelope with typed data.
type testEnvelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T, limiter *ratelimit.KeyedRateLimiter) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	v := validation.New()
	services := &Services{
		User:       service.NewUserService(st, v, logger),
		Artist:     service.NewArtistService(st, v, logger),
		Album:      service.NewAlbumService(st, v, logger),
		Song:       service.NewSongService(st, v, logger),
		Playlist:   service.NewPlaylistService(st, v, logger),
		Membership: service.NewMembershipService(st, logger),
		Detail:     service.NewDetailService(st, logger),
	}

	s := NewServer(st, services, config.ServerConfig{}, limiter, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

type idBody struct {
	ID int64 `json:"id"`
}

func (ts *testServer) create(t *testing.T, path string, body any) int64 {
	t.Helper()
	resp := ts.api.Post(path, body)
	require.Equal(t, http.StatusCreated, resp.Code, "POST %s: %s", path, resp.Body.String())
	return decode[idBody](t, resp.Body.Bytes()).Data.ID
}

// seedPlaylist creates an owner, an artist, n songs and an empty playlist.
func (ts *testServer) seedPlaylist(t *testing.T, n int) (int64, []int64) {
	t.Helper()
	userID := ts.create(t, "/api/v1/users", map[string]any{"name": "Owner", "email": "owner@example.com"})
	artistID := ts.create(t, "/api/v1/artists", map[string]any{"name": "Band"})

	songs := make([]int64, n)
	for i := range songs {
		songs[i] = ts.create(t, "/api/v1/songs", map[string]any{
			"title":      fmt.Sprintf("Song %d", i+1),
			"duration":   200,
			"artist_ids": []int64{artistID},
		})
	}

	playlistID := ts.create(t, "/api/v1/playlists", map[string]any{"name": "Mix", "user_id": userID})
	return playlistID, songs
}

type entryBody struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
}

func (ts *testServer) playlistOrder(t *testing.T, playlistID int64) ([]int64, []int) {
	t.Helper()
	resp := ts.api.Get(fmt.Sprintf("/api/v1/playlists/%d/songs", playlistID))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	entries := decode[[]entryBody](t, resp.Body.Bytes()).Data
	ids := make([]int64, len(entries))
	positions := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
		positions[i] = e.Position
	}
	return ids, positions
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "healthy", env.Data.Components["database"].Status)
}

func TestRequestIDHeader(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/health")
	assert.Regexp(t, `^req-[2-9a-z]{16}$`, resp.Header().Get(requestIDHeader))

	resp = ts.api.Get("/health", requestIDHeader+": client-supplied")
	assert.Equal(t, "client-supplied", resp.Header().Get(requestIDHeader))
}

func TestEnvelope_Error(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/playlists/99")
	require.Equal(t, http.StatusNotFound, resp.Code)

	env := decode[any](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "playlist", env.Error.Entity)
}

func TestRateLimit_OnlyMutatingRequests(t *testing.T) {
	limiter := ratelimit.New(0.001, 1)
	t.Cleanup(limiter.Stop)
	ts := setupTestServer(t, limiter)

	resp := ts.api.Post("/api/v1/artists", map[string]any{"name": "First"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Post("/api/v1/artists", map[string]any{"name": "Second"})
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "1", resp.Header().Get("Retry-After"))

	env := decode[any](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)

	for range 3 {
		resp = ts.api.Get("/api/v1/artists")
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.2.3.4:5", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "1.2.3.4:5", "10.0.0.9"},
		{"remote addr", nil, "1.2.3.4:5678", "1.2.3.4"},
		{"ipv6 remote addr", nil, "[::1]:8080", "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}
