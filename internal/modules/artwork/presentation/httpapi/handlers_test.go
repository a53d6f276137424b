package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/artwork/application/usecases"
)

type stubSource struct {
	blob []byte
	err  error
}

func (s *stubSource) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.blob, "image/png", nil
}

type stubCache struct {
	blobs map[string][]byte
}

func (c *stubCache) Get(key string) ([]byte, bool) {
	blob, ok := c.blobs[key]
	return blob, ok
}

func (c *stubCache) Put(key string, blob []byte) error {
	c.blobs[key] = blob
	return nil
}

func newTestRouter(t *testing.T, source *stubSource) *mux.Router {
	t.Helper()

	service := usecases.NewArtworkService(source, &stubCache{blobs: make(map[string][]byte)})
	router := mux.NewRouter()
	NewHandler(service).RegisterRoutes(router)
	return router
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestHandleArtworkResizes(t *testing.T) {
	router := newTestRouter(t, &stubSource{blob: testPNG(t, 64, 64)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artwork?url=http%3A%2F%2Fexample.com%2Fa.png&w=32", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("expected content type image/jpeg, got %q", got)
	}

	img, err := imaging.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if got := img.Bounds().Dx(); got != 32 {
		t.Errorf("expected width 32, got %d", got)
	}
}

func TestHandleArtworkRequiresURL(t *testing.T) {
	router := newTestRouter(t, &stubSource{blob: testPNG(t, 8, 8)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artwork", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the response body")
	}
}

func TestHandleArtworkRejectsBadWidth(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-integer", query: "url=http%3A%2F%2Fexample.com%2Fa.png&w=big"},
		{name: "negative", query: "url=http%3A%2F%2Fexample.com%2Fa.png&w=-5"},
		{name: "oversized", query: "url=http%3A%2F%2Fexample.com%2Fa.png&w=99999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubSource{blob: testPNG(t, 8, 8)})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artwork?"+tt.query, nil))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleArtworkUpstreamFailure(t *testing.T) {
	router := newTestRouter(t, &stubSource{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artwork?url=http%3A%2F%2Fexample.com%2Fa.png&w=32", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rec.Code)
	}
}
