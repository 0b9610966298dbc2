package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/userauth/internal/handler"
	"github.com/msomdec/userauth/internal/repository/jsonfile"
	"github.com/msomdec/userauth/internal/service"
)

type testEnv struct {
	srv       *httptest.Server
	store     *jsonfile.Store
	staticDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	staticDir := filepath.Join(dir, "public")
	if err := os.Mkdir(staticDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"index.html":            "<h1>home</h1>",
		"dashboardprofile.html": "<h1>dashboard</h1>",
		"style.css":             "body{}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(staticDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	store := jsonfile.New(filepath.Join(dir, "data.json"))
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(store, service.NewBcryptHasher(4))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, staticDir)

	srv := httptest.NewServer(handler.Chain(mux, handler.RequestLogger, handler.CORS, handler.SecurityHeaders))
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: store, staticDir: staticDir}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return e.postRaw(t, path, b)
}

func (e *testEnv) postRaw(t *testing.T, path string, body []byte) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(e.srv.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("POST %s: expected Content-Type application/json, got %s", path, ct)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, out
}
