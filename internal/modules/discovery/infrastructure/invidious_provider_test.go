package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const searchFixture = `[
  {
    "type": "video",
    "videoId": "abc123",
    "title": "Golden Hour",
    "author": "JVKE",
    "lengthSeconds": 209,
    "viewCount": 12345678,
    "videoThumbnails": [
      {"quality": "maxres", "url": "https://img.example/maxres.jpg"},
      {"quality": "medium", "url": "https://img.example/medium.jpg"}
    ]
  },
  {
    "type": "video",
    "videoId": "",
    "title": "Broken entry without an ID"
  }
]`

func TestInvidiousProvider_Search(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "golden hour" {
			t.Errorf("expected query golden hour, got %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "video" {
			t.Errorf("expected type video, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer upstream.Close()

	provider := NewInvidiousProvider(upstream.URL)
	tracks, err := provider.Search(context.Background(), "golden hour")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(tracks) != 1 {
		t.Fatalf("expected 1 track (entry without ID skipped), got %d", len(tracks))
	}
	track := tracks[0]
	if track.ID != "abc123" {
		t.Errorf("expected ID abc123, got %q", track.ID)
	}
	if track.Thumbnail != "https://img.example/medium.jpg" {
		t.Errorf("expected medium thumbnail, got %q", track.Thumbnail)
	}
	if track.Duration != "3:29" {
		t.Errorf("expected duration 3:29, got %q", track.Duration)
	}
	if track.Views != 12345678 {
		t.Errorf("expected views 12345678, got %d", track.Views)
	}
}

func TestInvidiousProvider_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer upstream.Close()

	provider := NewInvidiousProvider(upstream.URL)
	if _, err := provider.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error for non-200 upstream response")
	}
}

func TestInvidiousProvider_BadPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer upstream.Close()

	provider := NewInvidiousProvider(upstream.URL)
	if _, err := provider.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error for malformed payload")
	}
}
