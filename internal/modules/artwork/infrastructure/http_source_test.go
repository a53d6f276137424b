package infrastructure

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSourceFetch(t *testing.T) {
	body := []byte{0xff, 0xd8, 0xff}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(body)
	}))
	defer upstream.Close()

	source := NewHTTPSource()
	got, contentType, err := source.Fetch(context.Background(), upstream.URL+"/a.jpg")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("expected %v, got %v", body, got)
	}
	if contentType != "image/jpeg" {
		t.Errorf("expected content type image/jpeg, got %q", contentType)
	}
}

func TestHTTPSourceRejectsNonOKStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	source := NewHTTPSource()
	if _, _, err := source.Fetch(context.Background(), upstream.URL+"/a.jpg"); err == nil {
		t.Error("expected error for non-200 upstream status")
	}
}

func TestHTTPSourceRejectsUnsupportedScheme(t *testing.T) {
	source := NewHTTPSource()
	if _, _, err := source.Fetch(context.Background(), "file:///etc/passwd"); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}
