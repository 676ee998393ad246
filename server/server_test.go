package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/oauth-redirect-relay/analytics"
	"github.com/jrsteele09/oauth-redirect-relay/exchange"
	"github.com/jrsteele09/oauth-redirect-relay/internal/config"
	"github.com/jrsteele09/oauth-redirect-relay/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testClientID     = "test-client-1"
	testClientSecret = "test-secret-1"
	testDomain       = "relay.example.com"
	testCallbackPath = "/client_uri/https%3A%2F%2Fexample.com%2Fcb"
	testTokenBody    = `{"token_type":"Bearer","access_token":"tok","expires_at":1700000000}`
)

var testIcon = []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x10, 0x10}

// recordingReporter captures events instead of sending them.
type recordingReporter struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingReporter) Report(event analytics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingReporter) Wait(context.Context) error { return nil }

func (r *recordingReporter) Events() []analytics.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]analytics.Event(nil), r.events...)
}

// panicExchanger proves a code path never reaches the provider.
type panicExchanger struct{}

func (panicExchanger) Exchange(context.Context, string) ([]byte, error) {
	panic("exchange must not be called")
}

func newTestConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("CLIENT_ID", testClientID)
	t.Setenv("CLIENT_SECRET", testClientSecret)
	t.Setenv("THIS_DOMAIN", testDomain)
	t.Setenv("ANALYTICS_API_KEY", "key-1")
	t.Setenv("ENV", "TEST")
	t.Setenv("FAVICON_PATH", "")
	c, err := config.New()
	require.NoError(t, err)
	return c
}

func newTestServer(t *testing.T, opts ...server.Option) *server.Server {
	t.Helper()
	opts = append([]server.Option{server.WithLogger(zerolog.Nop())}, opts...)
	s, err := server.New(newTestConfig(t), opts...)
	require.NoError(t, err)
	return s
}

// newProvider stands in for the OAuth token endpoint.
func newProvider(t *testing.T, status int, body string) exchange.Exchanger {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return exchange.New(oauth2.Endpoint{TokenURL: srv.URL}, testClientID, testClientSecret, time.Second)
}

func serve(s http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestNew_DefaultsFromConfig(t *testing.T) {
	s := newTestServer(t)
	_, ok := s.Reporter().(*analytics.Collector)
	require.True(t, ok)

	t.Setenv("ANALYTICS_ENABLED", "false")
	c, err := config.New()
	require.NoError(t, err)
	s, err = server.New(c, server.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.Equal(t, analytics.Disabled{}, s.Reporter())
}

func TestFavicon(t *testing.T) {
	t.Run("served when loaded", func(t *testing.T) {
		s := newTestServer(t, server.WithFavicon(testIcon), server.WithExchanger(panicExchanger{}))

		for i := 0; i < 2; i++ {
			rec := serve(s, http.MethodGet, "/favicon.ico", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "image/x-icon", rec.Header().Get("Content-Type"))
			require.Equal(t, testIcon, rec.Body.Bytes())
		}
	})

	t.Run("404 when absent", func(t *testing.T) {
		s := newTestServer(t, server.WithExchanger(panicExchanger{}))

		rec := serve(s, http.MethodGet, "/favicon.ico", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHead(t *testing.T) {
	s := newTestServer(t, server.WithExchanger(panicExchanger{}))

	for _, path := range []string{"/", "/favicon.ico", "/anything/else", testCallbackPath + "?code=abc123", "/client_uri"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(s, http.MethodHead, path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Empty(t, rec.Body.Bytes())
		})
	}
}

func TestUnsupportedPaths(t *testing.T) {
	s := newTestServer(t, server.WithExchanger(panicExchanger{}))

	for _, path := range []string{"/", "/callback?code=abc123", "/favicon.ico/", "/static/app.js", "/client"} {
		t.Run(path, func(t *testing.T) {
			first := serve(s, http.MethodGet, path, nil)
			require.Equal(t, http.StatusBadRequest, first.Code)
			require.Empty(t, first.Body.Bytes())

			second := serve(s, http.MethodGet, path, nil)
			require.Equal(t, first.Code, second.Code)
			require.Equal(t, first.Body.Bytes(), second.Body.Bytes())
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, server.WithExchanger(panicExchanger{}))

	rec := serve(s, http.MethodPost, testCallbackPath+"?code=abc123", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestLoadFavicon(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "favicon.ico")
		require.NoError(t, os.WriteFile(path, testIcon, 0o600))

		icon, err := server.LoadFavicon(path)
		require.NoError(t, err)
		require.Equal(t, testIcon, icon)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		icon, err := server.LoadFavicon(filepath.Join(t.TempDir(), "nope.ico"))
		require.NoError(t, err)
		require.Nil(t, icon)
	})

	t.Run("served from configured path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "favicon.ico")
		require.NoError(t, os.WriteFile(path, testIcon, 0o600))
		newTestConfig(t)
		t.Setenv("FAVICON_PATH", path)
		c, err := config.New()
		require.NoError(t, err)

		s, err := server.New(c, server.WithLogger(zerolog.Nop()))
		require.NoError(t, err)
		rec := serve(s, http.MethodGet, "/favicon.ico", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, testIcon, rec.Body.Bytes())
	})
}
