package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"thaichat/internal/config"
	"thaichat/internal/repository"
	"thaichat/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a server over a fresh seeded in-memory store with
// routes registered. No Redis, no database, no outer middleware.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	st := store.New()
	s := &Server{
		config: &config.Config{
			Port:          "8080",
			Env:           "test",
			StorageDriver: config.DriverMemory,
		},
		store:       st,
		userRepo:    repository.NewMemoryUserRepository(st),
		messageRepo: repository.NewMemoryMessageRepository(st),
		themeRepo:   repository.NewMemoryThemeRepository(st),
	}

	app := s.NewApp()
	s.SetupRoutes(app)
	return s, app
}

// doJSON performs a request with an optional JSON body against the app and
// decodes the response body into a generic map when there is one.
func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// doJSONList is doJSON for endpoints that return a JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, target string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}
