package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

type fakeOverview struct {
	overview *entities.Overview
	err      error
}

func (f fakeOverview) Overview(context.Context) (*entities.Overview, error) {
	return f.overview, f.err
}

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	NewRouter(h).ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := NewHandler(PingFunc(func(context.Context) error { return nil }), fakeOverview{}, zap.NewNop())

	if rec := serve(t, h, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name string
		ping error
		want int
	}{
		{"reachable", nil, http.StatusOK},
		{"unreachable", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(PingFunc(func(context.Context) error { return tt.ping }), fakeOverview{}, zap.NewNop())

			if rec := serve(t, h, "/readyz"); rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestStats(t *testing.T) {
	ping := PingFunc(func(context.Context) error { return nil })

	h := NewHandler(ping, fakeOverview{overview: &entities.Overview{Users: 3, ActiveUsers: 2, DeliveredToday: 1}}, zap.NewNop())
	rec := serve(t, h, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var got entities.Overview
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Users != 3 || got.ActiveUsers != 2 || got.DeliveredToday != 1 {
		t.Errorf("Unexpected overview %+v", got)
	}

	h = NewHandler(ping, fakeOverview{err: errors.New("db down")}, zap.NewNop())
	if rec := serve(t, h, "/stats"); rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}
