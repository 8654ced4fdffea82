package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab-time-tracker/internal/server"
	"gitlab-time-tracker/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(server.New(storage.NewMemory(), nil))
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, token string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+"/api/timestamp", nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequiresBearerToken(t *testing.T) {
	ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/timestamp", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTimestampLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// No timer yet.
	status, _ := doRequest(t, ts, http.MethodGet, "tok")
	assert.Equal(t, http.StatusNotFound, status)

	// Start stores "now" in unix milliseconds and echoes it.
	before := time.Now().UnixMilli()
	status, body := doRequest(t, ts, http.MethodPost, "tok")
	require.Equal(t, http.StatusOK, status)
	millis, err := strconv.ParseInt(body, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, millis, before)
	assert.LessOrEqual(t, millis, time.Now().UnixMilli())

	// The stored value is returned unchanged.
	status, got := doRequest(t, ts, http.MethodGet, "tok")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, body, got)

	// Stop deletes it.
	status, _ = doRequest(t, ts, http.MethodDelete, "tok")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doRequest(t, ts, http.MethodGet, "tok")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteWithoutTimer(t *testing.T) {
	ts := newTestServer(t)
	status, _ := doRequest(t, ts, http.MethodDelete, "tok")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTokensAreIsolated(t *testing.T) {
	ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodPost, "alice")
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, ts, http.MethodGet, "bob")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthIsOpen(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Bearer ", ""},
		{"Basic abc", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, server.TokenFromHeader(tt.header), "header %q", tt.header)
	}
}
