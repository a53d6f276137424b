package usecases

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/klyne/auralis/internal/modules/library/application/ports"
	"github.com/klyne/auralis/internal/modules/library/domain"
)

// Storage namespaces. Each holds one JSON document replaced on every write.
const (
	likedNamespace     = "liked_songs"
	playlistsNamespace = "playlists"
)

// LibraryService manages liked tracks and playlists. State lives in
// memory and every mutation is written through to the store, so a
// restart recovers the full library.
type LibraryService struct {
	store ports.Store
	index ports.SearchIndex

	mu        sync.RWMutex
	liked     []domain.Track
	playlists []domain.Playlist
}

// NewLibraryService creates a LibraryService and loads persisted state.
// A missing or partially corrupt store starts the library empty.
func NewLibraryService(ctx context.Context, store ports.Store, index ports.SearchIndex) (*LibraryService, error) {
	s := &LibraryService{
		store: store,
		index: index,
	}

	if err := store.Load(ctx, likedNamespace, &s.liked); err != nil {
		slog.Warn("failed to load liked tracks, starting empty", "error", err)
		s.liked = nil
	}
	if err := store.Load(ctx, playlistsNamespace, &s.playlists); err != nil {
		slog.Warn("failed to load playlists, starting empty", "error", err)
		s.playlists = nil
	}

	s.rebuildIndex(ctx)
	return s, nil
}

// rebuildIndex indexes every known track. Index failures are logged,
// not fatal; search degrades but the library still works.
func (s *LibraryService) rebuildIndex(ctx context.Context) {
	for _, track := range s.allTracksLocked() {
		if err := s.index.Index(ctx, track); err != nil {
			slog.Warn("failed to index track", "track_id", track.ID, "error", err)
		}
	}
}

func (s *LibraryService) allTracksLocked() []domain.Track {
	seen := make(map[string]bool)
	var tracks []domain.Track

	for _, track := range s.liked {
		if !seen[track.ID] {
			seen[track.ID] = true
			tracks = append(tracks, track)
		}
	}
	for _, playlist := range s.playlists {
		for _, track := range playlist.Tracks {
			if !seen[track.ID] {
				seen[track.ID] = true
				tracks = append(tracks, track)
			}
		}
	}
	return tracks
}

// LikedTracks returns a copy of the liked tracks in like order.
func (s *LibraryService) LikedTracks() []domain.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Track, len(s.liked))
	copy(result, s.liked)
	return result
}

// IsLiked returns true if a track with the given ID is liked.
func (s *LibraryService) IsLiked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.likedIndexLocked(id) >= 0
}

func (s *LibraryService) likedIndexLocked(id string) int {
	for i, track := range s.liked {
		if track.ID == id {
			return i
		}
	}
	return -1
}

// ToggleLike likes the given track, or unlikes it if already liked.
// Returns the new liked state.
func (s *LibraryService) ToggleLike(ctx context.Context, track domain.Track) (bool, error) {
	if !track.IsValid() {
		return false, ErrNoActiveTrack
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	liked := false
	if i := s.likedIndexLocked(track.ID); i >= 0 {
		s.liked = append(s.liked[:i], s.liked[i+1:]...)
	} else {
		s.liked = append(s.liked, track)
		liked = true
	}

	if err := s.store.Save(ctx, likedNamespace, s.liked); err != nil {
		return liked, err
	}

	if liked {
		if err := s.index.Index(ctx, track); err != nil {
			slog.Warn("failed to index liked track", "track_id", track.ID, "error", err)
		}
	} else if !s.trackReferencedLocked(track.ID) {
		if err := s.index.Remove(ctx, track.ID); err != nil {
			slog.Warn("failed to deindex track", "track_id", track.ID, "error", err)
		}
	}

	return liked, nil
}

// trackReferencedLocked reports whether any library collection still
// holds the track.
func (s *LibraryService) trackReferencedLocked(id string) bool {
	if s.likedIndexLocked(id) >= 0 {
		return true
	}
	for i := range s.playlists {
		if s.playlists[i].ContainsTrack(id) {
			return true
		}
	}
	return false
}

// Playlists returns a copy of all playlists in creation order.
func (s *LibraryService) Playlists() []domain.Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Playlist, len(s.playlists))
	for i, playlist := range s.playlists {
		result[i] = copyPlaylist(playlist)
	}
	return result
}

func copyPlaylist(p domain.Playlist) domain.Playlist {
	tracks := make([]domain.Track, len(p.Tracks))
	copy(tracks, p.Tracks)
	return domain.Playlist{Name: p.Name, Tracks: tracks}
}

func (s *LibraryService) playlistIndexLocked(name string) int {
	for i := range s.playlists {
		if s.playlists[i].Name == name {
			return i
		}
	}
	return -1
}

// Playlist returns the named playlist.
func (s *LibraryService) Playlist(name string) (domain.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.playlistIndexLocked(name)
	if i < 0 {
		return domain.Playlist{}, ErrNoSuchPlaylist
	}
	return copyPlaylist(s.playlists[i]), nil
}

// CreatePlaylist creates a new empty playlist with the given name.
func (s *LibraryService) CreatePlaylist(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playlistIndexLocked(name) >= 0 {
		return ErrDuplicateName
	}

	s.playlists = append(s.playlists, domain.Playlist{Name: name})
	return s.store.Save(ctx, playlistsNamespace, s.playlists)
}

// DeletePlaylist removes the named playlist and returns the remaining
// playlists, so callers can fall back to another view.
func (s *LibraryService) DeletePlaylist(ctx context.Context, name string) ([]domain.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playlistIndexLocked(name)
	if i < 0 {
		return nil, ErrNoSuchPlaylist
	}

	removed := s.playlists[i]
	s.playlists = append(s.playlists[:i], s.playlists[i+1:]...)

	if err := s.store.Save(ctx, playlistsNamespace, s.playlists); err != nil {
		return nil, err
	}

	// Deindex tracks that only lived in the removed playlist.
	for _, track := range removed.Tracks {
		if !s.trackReferencedLocked(track.ID) {
			if err := s.index.Remove(ctx, track.ID); err != nil {
				slog.Warn("failed to deindex track", "track_id", track.ID, "error", err)
			}
		}
	}

	remaining := make([]domain.Playlist, len(s.playlists))
	for j, playlist := range s.playlists {
		remaining[j] = copyPlaylist(playlist)
	}
	return remaining, nil
}

// AddToPlaylist appends a track to the named playlist.
func (s *LibraryService) AddToPlaylist(ctx context.Context, name string, track domain.Track) error {
	if !track.IsValid() {
		return ErrNoActiveTrack
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playlistIndexLocked(name)
	if i < 0 {
		return ErrNoSuchPlaylist
	}
	if s.playlists[i].ContainsTrack(track.ID) {
		return ErrDuplicateTrack
	}

	s.playlists[i].Tracks = append(s.playlists[i].Tracks, track)

	if err := s.store.Save(ctx, playlistsNamespace, s.playlists); err != nil {
		return err
	}

	if err := s.index.Index(ctx, track); err != nil {
		slog.Warn("failed to index playlist track", "track_id", track.ID, "error", err)
	}
	return nil
}

// RemoveFromPlaylist removes a track from the named playlist. Removing
// a track that is not in the playlist is a no-op.
func (s *LibraryService) RemoveFromPlaylist(ctx context.Context, name, trackID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playlistIndexLocked(name)
	if i < 0 {
		return ErrNoSuchPlaylist
	}

	tracks := s.playlists[i].Tracks
	for j, track := range tracks {
		if track.ID == trackID {
			s.playlists[i].Tracks = append(tracks[:j], tracks[j+1:]...)
			break
		}
	}

	if err := s.store.Save(ctx, playlistsNamespace, s.playlists); err != nil {
		return err
	}

	if !s.trackReferencedLocked(trackID) {
		if err := s.index.Remove(ctx, trackID); err != nil {
			slog.Warn("failed to deindex track", "track_id", trackID, "error", err)
		}
	}
	return nil
}

// Search finds library tracks matching the term, best matches first.
func (s *LibraryService) Search(ctx context.Context, term string, size int) ([]domain.Track, error) {
	ids, err := s.index.Search(ctx, term, size)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]domain.Track)
	for _, track := range s.allTracksLocked() {
		byID[track.ID] = track
	}

	tracks := make([]domain.Track, 0, len(ids))
	for _, id := range ids {
		if track, ok := byID[id]; ok {
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}
