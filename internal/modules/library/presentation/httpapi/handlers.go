package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/library/application/usecases"
	"github.com/klyne/auralis/internal/modules/library/domain"
	"github.com/klyne/auralis/internal/server"
)

// defaultSearchSize caps library search results.
const defaultSearchSize = 20

// Handler exposes the library over HTTP.
type Handler struct {
	library *usecases.LibraryService
}

// NewHandler creates a new Handler.
func NewHandler(library *usecases.LibraryService) *Handler {
	return &Handler{library: library}
}

// RegisterRoutes attaches the library endpoints to the given router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	s := r.PathPrefix("/api/library").Subrouter()
	s.HandleFunc("/liked", h.likedHandler).Methods(http.MethodGet)
	s.HandleFunc("/liked/toggle", h.toggleLikeHandler).Methods(http.MethodPost)
	s.HandleFunc("/liked/{id}", h.isLikedHandler).Methods(http.MethodGet)
	s.HandleFunc("/playlists", h.playlistsHandler).Methods(http.MethodGet)
	s.HandleFunc("/playlists", h.createPlaylistHandler).Methods(http.MethodPost)
	s.HandleFunc("/playlists/{name}", h.playlistHandler).Methods(http.MethodGet)
	s.HandleFunc("/playlists/{name}", h.deletePlaylistHandler).Methods(http.MethodDelete)
	s.HandleFunc("/playlists/{name}/tracks", h.addTrackHandler).Methods(http.MethodPost)
	s.HandleFunc("/playlists/{name}/tracks/{id}", h.removeTrackHandler).Methods(http.MethodDelete)
	s.HandleFunc("/search", h.searchHandler).Methods(http.MethodGet)
}

// respondLibraryError maps usecase errors onto HTTP status codes.
func respondLibraryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecases.ErrNoSuchPlaylist):
		server.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecases.ErrDuplicateName),
		errors.Is(err, usecases.ErrDuplicateTrack):
		server.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecases.ErrNoActiveTrack),
		errors.Is(err, usecases.ErrEmptyName):
		server.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		server.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) likedHandler(w http.ResponseWriter, r *http.Request) {
	server.RespondJSON(w, http.StatusOK, h.library.LikedTracks())
}

func (h *Handler) toggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	var track domain.Track
	if err := server.DecodeJSON(r, &track); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	liked, err := h.library.ToggleLike(r.Context(), track)
	if err != nil {
		respondLibraryError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *Handler) isLikedHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	server.RespondJSON(w, http.StatusOK, map[string]bool{"liked": h.library.IsLiked(id)})
}

func (h *Handler) playlistsHandler(w http.ResponseWriter, r *http.Request) {
	server.RespondJSON(w, http.StatusOK, h.library.Playlists())
}

func (h *Handler) createPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := server.DecodeJSON(r, &body); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.library.CreatePlaylist(r.Context(), body.Name); err != nil {
		respondLibraryError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusCreated, h.library.Playlists())
}

func (h *Handler) playlistHandler(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.library.Playlist(mux.Vars(r)["name"])
	if err != nil {
		respondLibraryError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, playlist)
}

func (h *Handler) deletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	remaining, err := h.library.DeletePlaylist(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondLibraryError(w, err)
		return
	}
	// Clients showing the deleted playlist fall back to the liked view.
	server.RespondJSON(w, http.StatusOK, map[string]any{
		"playlists": remaining,
		"fallback":  "liked",
	})
}

func (h *Handler) addTrackHandler(w http.ResponseWriter, r *http.Request) {
	var track domain.Track
	if err := server.DecodeJSON(r, &track); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := mux.Vars(r)["name"]
	if err := h.library.AddToPlaylist(r.Context(), name, track); err != nil {
		respondLibraryError(w, err)
		return
	}

	playlist, err := h.library.Playlist(name)
	if err != nil {
		respondLibraryError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, playlist)
}

func (h *Handler) removeTrackHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.library.RemoveFromPlaylist(r.Context(), vars["name"], vars["id"]); err != nil {
		respondLibraryError(w, err)
		return
	}

	playlist, err := h.library.Playlist(vars["name"])
	if err != nil {
		respondLibraryError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, playlist)
}

func (h *Handler) searchHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		server.RespondError(w, http.StatusBadRequest, "missing query parameter: q")
		return
	}

	size := defaultSearchSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > defaultSearchSize {
			server.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		size = parsed
	}

	tracks, err := h.library.Search(r.Context(), term, size)
	if err != nil {
		server.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tracks == nil {
		tracks = []domain.Track{}
	}
	server.RespondJSON(w, http.StatusOK, tracks)
}
