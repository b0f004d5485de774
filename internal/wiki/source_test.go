package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

const articlePage = `<html><body>
<h1 id="firstHeading">Луна</h1>
<div id="mw-content-text">
  <p>   </p>
  <p>Луна — единственный естественный спутник Земли.</p>
  <p>Second paragraph.</p>
</div>
</body></html>`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRandom_ParsesArticleAfterRedirect(t *testing.T) {
	var gotUA string
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/Special:Random", func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		http.Redirect(w, r, "/wiki/Moon", http.StatusFound)
	})
	mux.HandleFunc("/wiki/Moon", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	})
	srv := newTestServer(t, mux.ServeHTTP)

	src := NewSource(Config{
		RandomURL: srv.URL + "/wiki/Special:Random",
		UserAgent: "test-agent",
	}, zap.NewNop())

	a := src.FetchRandom(context.Background())

	if a.Title != "Луна" {
		t.Errorf("Expected title Луна, got %q", a.Title)
	}
	if a.URL != srv.URL+"/wiki/Moon" {
		t.Errorf("Expected final URL, got %q", a.URL)
	}
	if a.Summary != "Луна — единственный естественный спутник Земли." {
		t.Errorf("Unexpected summary %q", a.Summary)
	}
	if gotUA != "test-agent" {
		t.Errorf("Expected user agent to be sent, got %q", gotUA)
	}
}

func TestFetchRandom_Fallbacks(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div>nothing here</div></body></html>`))
	})

	a := NewSource(Config{RandomURL: srv.URL}, zap.NewNop()).FetchRandom(context.Background())

	if a.Title != unknownTitle || a.Summary != noSummary {
		t.Errorf("Expected fallbacks, got %+v", a)
	}
	if a.IsPlaceholder() {
		t.Error("A parsed page must not be a placeholder")
	}
}

func TestFetchRandom_TruncatesSummaryByRunes(t *testing.T) {
	long := strings.Repeat("я", 20)
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<h1 id="firstHeading">T</h1><p>` + long + `</p>`))
	})

	a := NewSource(Config{RandomURL: srv.URL, SummaryLimit: 5}, zap.NewNop()).FetchRandom(context.Background())

	if a.Summary != "яяяяя..." {
		t.Errorf("Expected truncated summary, got %q", a.Summary)
	}
}

func TestFetchRandom_ErrorsBecomePlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			},
			timeout: 20 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.handler)

			a := NewSource(Config{RandomURL: srv.URL, Timeout: tt.timeout}, zap.NewNop()).FetchRandom(context.Background())

			if !a.IsPlaceholder() || a.Title != entities.PlaceholderTitle {
				t.Fatalf("Expected placeholder, got %+v", a)
			}
			if !strings.HasPrefix(a.Summary, "Не удалось получить статью: ") {
				t.Errorf("Unexpected placeholder summary %q", a.Summary)
			}
		})
	}
}
