package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		query  string
		want   bool
	}{
		{"application/json", "", true},
		{"text/html,application/json;q=0.9", "", true},
		{"text/html", "", false},
		{"", "", false},
		{"", "format=json", true},
		{"", "format=html", false},
	}

	for _, tt := range tests {
		target := "/"
		if tt.query != "" {
			target += "?" + tt.query
		}
		r := httptest.NewRequest("GET", target, nil)
		if tt.accept != "" {
			r.Header.Set("Accept", tt.accept)
		}
		if got := WantsJSON(r); got != tt.want {
			t.Errorf("WantsJSON(accept=%q, query=%q) = %v, want %v", tt.accept, tt.query, got, tt.want)
		}
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondError(w, http.StatusNotFound, "tidak ditemukan")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body["error"] != "tidak ditemukan" {
		t.Errorf("error: got %q", body["error"])
	}
}

func TestNotFoundNegotiation(t *testing.T) {
	// JSON clients get a JSON error
	r := httptest.NewRequest("GET", "/?format=json", nil)
	w := httptest.NewRecorder()
	NotFound(w, r, "missing")
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %s", ct)
	}

	// everyone else gets plain text
	r = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	NotFound(w, r, "missing")
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d", w.Code)
	}
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		t.Error("plain request should not get JSON")
	}
}

func TestRender(t *testing.T) {
	out := RenderString("# Judul\n\nIsi *penting*.")
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<em>penting</em>") {
		t.Errorf("markdown not rendered: %s", out)
	}
}

func TestRenderHTMLTemplate(t *testing.T) {
	out := RenderHTML("Peta", "Peta desa", "<p>isi halaman</p>")
	if !strings.Contains(out, "<title>Peta | Desa Gedangan</title>") {
		t.Error("missing page title")
	}
	if !strings.Contains(out, "<p>isi halaman</p>") {
		t.Error("missing page content")
	}
	if !strings.Contains(out, `href="/spots"`) {
		t.Error("missing nav link")
	}
}
