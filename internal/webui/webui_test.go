package webui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	res.Body.Close()
	return res, string(body)
}

func TestHandler_ServesEmbeddedIndex(t *testing.T) {
	h := Handler("")

	res, body := get(t, h, "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", res.StatusCode)
	}
	if !strings.Contains(body, "<html") {
		t.Error("index page should contain HTML")
	}
}

func TestHandler_UnknownPathFallsBackToIndex(t *testing.T) {
	h := Handler("")

	res, fallback := get(t, h, "/no/such/page")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET /no/such/page status = %d, want 200 (index fallback)", res.StatusCode)
	}

	_, index := get(t, h, "/")
	if fallback != index {
		t.Error("unknown paths should serve the index page")
	}
}

func TestHandler_DevDirOverride(t *testing.T) {
	dir := t.TempDir()
	page := "<html><body>dev override</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	res, body := get(t, Handler(dir), "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", res.StatusCode)
	}
	if !strings.Contains(body, "dev override") {
		t.Error("dev dir contents should be served when the directory exists")
	}
}

func TestHandler_MissingDevDirUsesEmbedded(t *testing.T) {
	res, body := get(t, Handler(filepath.Join(t.TempDir(), "absent")), "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", res.StatusCode)
	}
	if !strings.Contains(body, "<html") {
		t.Error("embedded assets should be used when the dev dir is absent")
	}
}

func TestHandler_SetsCacheControl(t *testing.T) {
	res, _ := get(t, Handler(""), "/")
	if cc := res.Header.Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
		t.Errorf("Cache-Control = %q, want no-cache", cc)
	}
}
