package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/discovery/application/ports"
	"github.com/klyne/auralis/internal/modules/discovery/application/usecases"
	"github.com/klyne/auralis/internal/modules/discovery/infrastructure"
)

type stubProvider struct {
	tracks []ports.Track
	err    error
}

func (p *stubProvider) Search(_ context.Context, _ string) ([]ports.Track, error) {
	return p.tracks, p.err
}

func newTestRouter(provider ports.SearchProvider, seeds []string) *mux.Router {
	service := usecases.NewSearchService(provider, infrastructure.NewMemoryCache(time.Minute), seeds)
	router := mux.NewRouter()
	NewHandler(service).RegisterRoutes(router)
	return router
}

func get(router *mux.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSearchHandler(t *testing.T) {
	provider := &stubProvider{tracks: []ports.Track{
		{ID: "abc", Title: "Golden Hour", Author: "JVKE", Duration: "3:29", Views: 100},
	}}
	router := newTestRouter(provider, nil)

	// Both the legacy path and the api path serve the same results.
	for _, path := range []string{"/search?q=golden", "/api/search?q=golden"} {
		rec := get(router, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}

		var tracks []ports.Track
		if err := json.Unmarshal(rec.Body.Bytes(), &tracks); err != nil {
			t.Fatal(err)
		}
		if len(tracks) != 1 || tracks[0].ID != "abc" {
			t.Errorf("%s: unexpected tracks %+v", path, tracks)
		}
	}
}

func TestSearchHandler_MissingQuery(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	rec := get(router, "/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["error"] == "" {
		t.Error("expected error message in payload")
	}
}

func TestSearchHandler_ProviderFailure(t *testing.T) {
	router := newTestRouter(&stubProvider{err: errors.New("upstream down")}, nil)

	rec := get(router, "/search?q=anything")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestSearchHandler_NoResults(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	rec := get(router, "/search?q=obscure")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// Empty results serialize as [], not null.
	if got := rec.Body.String(); got != "[]\n" && got != "[]" {
		t.Errorf("expected empty array, got %q", got)
	}
}

func TestHomeHandler(t *testing.T) {
	provider := &stubProvider{tracks: []ports.Track{{ID: "abc", Title: "Song"}}}
	router := newTestRouter(provider, []string{"morning mix"})

	rec := get(router, "/api/home")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sections []usecases.HomeSection
	if err := json.Unmarshal(rec.Body.Bytes(), &sections); err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 || sections[0].Title != "morning mix" {
		t.Errorf("unexpected sections: %+v", sections)
	}
}
