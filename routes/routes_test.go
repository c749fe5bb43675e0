package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Dosada05/matchup-generator/handlers"
	"github.com/Dosada05/matchup-generator/middleware"
	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/services"
	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettings struct {
	services.SettingsService
	mu   sync.Mutex
	seen []string
}

func (s *stubSettings) Load(_ context.Context, sessionID string) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, sessionID)
	return models.DefaultSettings(), nil
}

func (s *stubSettings) sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.seen...)
}

func newTestServer(t *testing.T) (*httptest.Server, *stubSettings) {
	t.Helper()
	settingsStub := &stubSettings{}
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Health:   handlers.NewHealthHandler(nil, clockwork.NewFakeClock()),
		Settings: handlers.NewSettingsHandler(settingsStub),
		// остальные обработчики в этих тестах не вызываются
		Team:      handlers.NewTeamHandler(nil, nil),
		Player:    handlers.NewPlayerHandler(nil),
		Matchup:   handlers.NewMatchupHandler(nil),
		Match:     handlers.NewMatchHandler(nil, nil),
		WebSocket: handlers.NewWebSocketHandler(nil, nil, nil),
	}, Options{
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, settingsStub
}

func TestSetupRoutes_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies(), "public routes must not issue a session")
}

func TestSetupRoutes_SessionIsIssuedAndReused(t *testing.T) {
	srv, stub := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/settings")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/settings", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	seen := stub.sessions()
	require.Len(t, seen, 2)
	assert.Equal(t, cookie.Value, seen[0])
	assert.Equal(t, seen[0], seen[1])
}

func TestSetupRoutes_Metrics(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSetupRoutes_CORS(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := map[string]struct {
		origin    string
		wantAllow string
	}{
		"allowed origin": {origin: "http://localhost:5173", wantAllow: "http://localhost:5173"},
		"other origin":   {origin: "https://evil.example", wantAllow: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/teams", nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.wantAllow, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSetupRoutes_MCPDisabled(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
