// integration_tests/modules/music/handler_tests/helper.go
package musichandlerintegrationtests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/music-backend/app/modules/music"
	"github.com/Black-And-White-Club/music-backend/app/server"
	"github.com/Black-And-White-Club/music-backend/integration_tests/testutils"
	"github.com/Black-And-White-Club/music-backend/pkg/observability"
)

// testEnv is the shared test environment managed by TestMain.
var testEnv *testutils.TestEnvironment

// TestServer is a running HTTP server with the music module mounted on the shared database.
type TestServer struct {
	URL    string
	Client *http.Client
	Obs    observability.Observability
}

// SetupTestServer empties the music tables and serves the full router over a real listener.
func SetupTestServer(t *testing.T) *TestServer {
	t.Helper()

	if err := testEnv.CheckContainerHealth(); err != nil {
		t.Fatalf("test environment unhealthy: %v", err)
	}
	if err := testEnv.Reset(testEnv.Ctx); err != nil {
		t.Fatalf("failed to reset music tables: %v", err)
	}

	cfg := *testEnv.Config
	cfg.Observability.MetricsEnabled = true

	obs := observability.NewNoop()
	router := server.NewRouter(&cfg, obs, testEnv.DB)
	module, err := music.NewModule(testEnv.Ctx, &cfg, obs, testEnv.DB, router, server.APIMiddlewares(&cfg)...)
	if err != nil {
		t.Fatalf("failed to create music module: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = module.Close()
	})

	return &TestServer{URL: srv.URL, Client: srv.Client(), Obs: obs}
}

// Do sends body (marshalled as JSON when non-nil) and decodes a 2xx response into out.
func (s *TestServer) Do(t *testing.T, method, path string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(testEnv.Ctx, method, s.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("failed to decode %s %s response %q: %v", method, path, raw, err)
		}
	}
	return resp
}
