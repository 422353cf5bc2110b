//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/konjug-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/konjug-backend/internal/app"
	"github.com/heartmarshall/konjug-backend/internal/config"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-at-least-32-chars-long!!",
			JWTIssuer:        "test-issuer",
			SessionTTL:       time.Hour,
			CookieName:       "jwt",
			PasswordHashCost: 4,
		},
		Verbs: config.VerbsConfig{
			SearchLimit:        10,
			SearchMaxLimit:     50,
			SearchCacheTTL:     time.Minute,
			CacheCleanupPeriod: time.Minute,
			ImportBatchSize:    50,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   "http://localhost:3000",
			AllowedMethods:   "PUT,POST,PATCH,DELETE,GET",
			AllowedHeaders:   "Content-Type",
			AllowCredentials: true,
			MaxAge:           600,
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerMinute: 6000,
			Burst:             100,
			CleanupInterval:   time.Minute,
		},
	}
}

// setupTestServer bootstraps the application handler on a real PostgreSQL
// container shared via testhelper. The client keeps cookies so a login
// carries over to later requests.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	handler, closeHandler := app.NewHandler(testConfig(), logger, pool)
	t.Cleanup(closeHandler)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := srv.Client()
	client.Jar = jar

	return &testServer{URL: srv.URL, Client: client, Pool: pool}
}

// do sends a request with an optional JSON body and decodes a JSON response
// into out when out is non-nil.
func (ts *testServer) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out), "%s %s", method, path)
	}
	return resp.StatusCode
}
