package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	s, app := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["storage"])
	assert.Equal(t, s.Store().InstanceID(), body["instanceId"])
}

func TestOptionsAnswers200(t *testing.T) {
	_, app := newTestServer(t)

	for _, target := range []string{"/messages", "/auth/signup", "/theme", "/users/count"} {
		req := httptest.NewRequest(http.MethodOptions, target, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, target)
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	_, app := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}
