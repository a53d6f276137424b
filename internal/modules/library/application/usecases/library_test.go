package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/klyne/auralis/internal/modules/library/domain"
)

// memoryStore keeps namespace documents as JSON in memory, mirroring
// what the sqlite store does on disk.
type memoryStore struct {
	documents map[string][]byte
	saveErr   error
	saves     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{documents: make(map[string][]byte)}
}

func (m *memoryStore) Load(_ context.Context, namespace string, v any) error {
	body, ok := m.documents[namespace]
	if !ok {
		return nil
	}
	return json.Unmarshal(body, v)
}

func (m *memoryStore) Save(_ context.Context, namespace string, v any) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.documents[namespace] = body
	m.saves++
	return nil
}

func (m *memoryStore) Close() error { return nil }

// substringIndex is a trivial search index matching on title substrings.
type substringIndex struct {
	titles map[string]string
}

func newSubstringIndex() *substringIndex {
	return &substringIndex{titles: make(map[string]string)}
}

func (i *substringIndex) Index(_ context.Context, track domain.Track) error {
	i.titles[track.ID] = strings.ToLower(track.Title)
	return nil
}

func (i *substringIndex) Remove(_ context.Context, id string) error {
	delete(i.titles, id)
	return nil
}

func (i *substringIndex) Search(_ context.Context, term string, size int) ([]string, error) {
	var ids []string
	for id, title := range i.titles {
		if strings.Contains(title, strings.ToLower(term)) {
			ids = append(ids, id)
		}
		if len(ids) == size {
			break
		}
	}
	return ids, nil
}

func (i *substringIndex) Close() error { return nil }

func libraryTrack(id, title string) domain.Track {
	return domain.Track{ID: id, Title: title, Author: "Artist"}
}

func newTestLibrary(t *testing.T) (*LibraryService, *memoryStore, *substringIndex) {
	t.Helper()

	store := newMemoryStore()
	index := newSubstringIndex()
	service, err := NewLibraryService(context.Background(), store, index)
	if err != nil {
		t.Fatal(err)
	}
	return service, store, index
}

func TestLibraryService_ToggleLike(t *testing.T) {
	service, store, _ := newTestLibrary(t)
	ctx := context.Background()
	track := libraryTrack("a", "First Song")

	liked, err := service.ToggleLike(ctx, track)
	if err != nil {
		t.Fatalf("ToggleLike returned error: %v", err)
	}
	if !liked {
		t.Error("expected track to be liked")
	}
	if !service.IsLiked("a") {
		t.Error("expected IsLiked true")
	}
	if store.saves != 1 {
		t.Errorf("expected 1 write-through save, got %d", store.saves)
	}

	liked, err = service.ToggleLike(ctx, track)
	if err != nil {
		t.Fatalf("ToggleLike returned error: %v", err)
	}
	if liked {
		t.Error("expected track to be unliked")
	}
	if service.IsLiked("a") {
		t.Error("expected IsLiked false after unlike")
	}
	if len(service.LikedTracks()) != 0 {
		t.Errorf("expected no liked tracks, got %d", len(service.LikedTracks()))
	}
}

func TestLibraryService_ToggleLike_NoTrack(t *testing.T) {
	service, _, _ := newTestLibrary(t)

	if _, err := service.ToggleLike(context.Background(), domain.Track{}); !errors.Is(err, ErrNoActiveTrack) {
		t.Errorf("expected ErrNoActiveTrack, got %v", err)
	}
}

func TestLibraryService_LikedOrderPreserved(t *testing.T) {
	service, _, _ := newTestLibrary(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if _, err := service.ToggleLike(ctx, libraryTrack(id, "Song "+id)); err != nil {
			t.Fatal(err)
		}
	}

	liked := service.LikedTracks()
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if liked[i].ID != id {
			t.Fatalf("expected like order %v, got %v", want, liked)
		}
	}
}

func TestLibraryService_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()

	first, err := NewLibraryService(ctx, store, newSubstringIndex())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.ToggleLike(ctx, libraryTrack("a", "Kept Song")); err != nil {
		t.Fatal(err)
	}
	if err := first.CreatePlaylist(ctx, "road trip"); err != nil {
		t.Fatal(err)
	}
	if err := first.AddToPlaylist(ctx, "road trip", libraryTrack("b", "Other Song")); err != nil {
		t.Fatal(err)
	}

	// A fresh service over the same store sees everything.
	second, err := NewLibraryService(ctx, store, newSubstringIndex())
	if err != nil {
		t.Fatal(err)
	}
	if !second.IsLiked("a") {
		t.Error("expected liked track to survive reload")
	}
	playlist, err := second.Playlist("road trip")
	if err != nil {
		t.Fatal(err)
	}
	if len(playlist.Tracks) != 1 || playlist.Tracks[0].ID != "b" {
		t.Errorf("expected playlist with track b, got %+v", playlist)
	}
}

func TestLibraryService_CreatePlaylist(t *testing.T) {
	service, _, _ := newTestLibrary(t)
	ctx := context.Background()

	if err := service.CreatePlaylist(ctx, "chill"); err != nil {
		t.Fatalf("CreatePlaylist returned error: %v", err)
	}
	if err := service.CreatePlaylist(ctx, "chill"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if err := service.CreatePlaylist(ctx, "   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}

	playlists := service.Playlists()
	if len(playlists) != 1 || playlists[0].Name != "chill" {
		t.Errorf("expected single playlist chill, got %+v", playlists)
	}
}

func TestLibraryService_AddToPlaylist(t *testing.T) {
	service, _, _ := newTestLibrary(t)
	ctx := context.Background()
	track := libraryTrack("a", "Song")

	if err := service.AddToPlaylist(ctx, "missing", track); !errors.Is(err, ErrNoSuchPlaylist) {
		t.Errorf("expected ErrNoSuchPlaylist, got %v", err)
	}

	if err := service.CreatePlaylist(ctx, "mix"); err != nil {
		t.Fatal(err)
	}
	if err := service.AddToPlaylist(ctx, "mix", track); err != nil {
		t.Fatalf("AddToPlaylist returned error: %v", err)
	}
	if err := service.AddToPlaylist(ctx, "mix", track); !errors.Is(err, ErrDuplicateTrack) {
		t.Errorf("expected ErrDuplicateTrack, got %v", err)
	}
	if err := service.AddToPlaylist(ctx, "mix", domain.Track{}); !errors.Is(err, ErrNoActiveTrack) {
		t.Errorf("expected ErrNoActiveTrack, got %v", err)
	}
}

func TestLibraryService_RemoveFromPlaylist(t *testing.T) {
	service, _, index := newTestLibrary(t)
	ctx := context.Background()

	if err := service.CreatePlaylist(ctx, "mix"); err != nil {
		t.Fatal(err)
	}
	if err := service.AddToPlaylist(ctx, "mix", libraryTrack("a", "Song")); err != nil {
		t.Fatal(err)
	}

	if err := service.RemoveFromPlaylist(ctx, "mix", "a"); err != nil {
		t.Fatalf("RemoveFromPlaylist returned error: %v", err)
	}
	playlist, err := service.Playlist("mix")
	if err != nil {
		t.Fatal(err)
	}
	if len(playlist.Tracks) != 0 {
		t.Errorf("expected empty playlist, got %+v", playlist.Tracks)
	}
	if _, ok := index.titles["a"]; ok {
		t.Error("expected unreferenced track to be deindexed")
	}

	// Removing an absent track is a no-op.
	if err := service.RemoveFromPlaylist(ctx, "mix", "zzz"); err != nil {
		t.Errorf("expected no error for absent track, got %v", err)
	}
	if err := service.RemoveFromPlaylist(ctx, "missing", "a"); !errors.Is(err, ErrNoSuchPlaylist) {
		t.Errorf("expected ErrNoSuchPlaylist, got %v", err)
	}
}

func TestLibraryService_DeletePlaylist(t *testing.T) {
	service, _, _ := newTestLibrary(t)
	ctx := context.Background()

	if err := service.CreatePlaylist(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if err := service.CreatePlaylist(ctx, "second"); err != nil {
		t.Fatal(err)
	}

	remaining, err := service.DeletePlaylist(ctx, "first")
	if err != nil {
		t.Fatalf("DeletePlaylist returned error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Name != "second" {
		t.Errorf("expected remaining playlist second, got %+v", remaining)
	}

	if _, err := service.DeletePlaylist(ctx, "first"); !errors.Is(err, ErrNoSuchPlaylist) {
		t.Errorf("expected ErrNoSuchPlaylist, got %v", err)
	}
}

func TestLibraryService_LikedTrackStaysIndexedWhileInPlaylist(t *testing.T) {
	service, _, index := newTestLibrary(t)
	ctx := context.Background()
	track := libraryTrack("a", "Shared Song")

	if _, err := service.ToggleLike(ctx, track); err != nil {
		t.Fatal(err)
	}
	if err := service.CreatePlaylist(ctx, "mix"); err != nil {
		t.Fatal(err)
	}
	if err := service.AddToPlaylist(ctx, "mix", track); err != nil {
		t.Fatal(err)
	}

	// Unliking must not deindex while a playlist still holds the track.
	if _, err := service.ToggleLike(ctx, track); err != nil {
		t.Fatal(err)
	}
	if _, ok := index.titles["a"]; !ok {
		t.Error("expected track to remain indexed while referenced by a playlist")
	}
}

func TestLibraryService_Search(t *testing.T) {
	service, _, _ := newTestLibrary(t)
	ctx := context.Background()

	if _, err := service.ToggleLike(ctx, libraryTrack("a", "Golden Hour")); err != nil {
		t.Fatal(err)
	}
	if _, err := service.ToggleLike(ctx, libraryTrack("b", "Midnight Rain")); err != nil {
		t.Fatal(err)
	}

	tracks, err := service.Search(ctx, "golden", 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(tracks) != 1 || tracks[0].ID != "a" {
		t.Errorf("expected single match for golden, got %+v", tracks)
	}
}
