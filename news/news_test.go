package news

import (
	"strings"
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	// grows with attempts
	var last time.Duration
	for attempts := 1; attempts <= 13; attempts++ {
		d := backoff(attempts)
		if d <= last {
			t.Errorf("backoff(%d) = %v, not greater than %v", attempts, d, last)
		}
		last = d
	}

	// capped at an hour
	if d := backoff(14); d != time.Hour {
		t.Errorf("backoff(14) = %v, want 1h", d)
	}
	if d := backoff(100); d != time.Hour {
		t.Errorf("backoff(100) = %v, want 1h", d)
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Pengumuman posyandu bulan ini</p><p>Paragraf kedua</p>", "Pengumuman posyandu bulan ini"},
		{"Tanpa markup sama sekali", "Tanpa markup sama sekali"},
		{"<p>Dengan <b>tebal</b> di dalam</p>", "Dengan tebal di dalam"},
		{"  <p>  spasi  </p>", "spasi"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanDescription(tt.input); got != tt.want {
			t.Errorf("cleanDescription(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanDescriptionStripsScript(t *testing.T) {
	got := cleanDescription(`<p>Halo<script>alert(1)</script></p>`)
	if strings.Contains(got, "<script") {
		t.Errorf("script survived: %q", got)
	}
}

func TestRenderPosts(t *testing.T) {
	all := []*Post{
		{
			Title:       "Kerja Bakti Minggu",
			Description: "Gotong royong di balai desa.",
			URL:         "https://desagedangan.id/kerja-bakti",
			Category:    "Desa Gedangan",
			Image:       "https://desagedangan.id/img/cover.jpg",
			PostedAt:    time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Festival Duren",
			Description: "Panen raya.",
			URL:         "https://desagedangan.id/festival",
			Category:    "Desa Gedangan",
			PostedAt:    time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC),
		},
	}

	out := renderPosts(all)

	if !strings.Contains(out, "Kerja Bakti Minggu") {
		t.Error("missing first title")
	}
	if !strings.Contains(out, `src="https://desagedangan.id/img/cover.jpg"`) {
		t.Error("missing cover image")
	}
	if strings.Count(out, `<img class="cover"`) != 1 {
		t.Error("post without image should render no cover")
	}
	if !strings.Contains(out, "20 Aug 2026") {
		t.Error("missing formatted date")
	}
}
