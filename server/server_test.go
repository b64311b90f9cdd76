package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianliechti/prism/config"
	"github.com/adrianliechti/prism/server"

	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *server.Server {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Default()
	require.NoError(t, err)

	s, err := server.New(cfg)
	require.NoError(t, err)

	return s
}

func TestPreflight(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/functions/v1/generate-summary", nil)
	req.Header.Set("Origin", "https://prism.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "authorization, x-client-info, apikey, content-type")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Less(t, rec.Code, 300)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	allowed := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))

	for _, h := range []string{"authorization", "x-client-info", "apikey", "content-type"} {
		require.Contains(t, allowed, h)
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
