package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/artwork/application/usecases"
	"github.com/klyne/auralis/internal/server"
)

// Handler exposes the artwork proxy endpoint.
type Handler struct {
	artwork *usecases.ArtworkService
}

// NewHandler creates a Handler.
func NewHandler(artwork *usecases.ArtworkService) *Handler {
	return &Handler{artwork: artwork}
}

// RegisterRoutes mounts the artwork route on the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/artwork", h.handleArtwork).Methods(http.MethodGet)
}

func (h *Handler) handleArtwork(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		server.RespondError(w, http.StatusBadRequest, "url parameter is required")
		return
	}

	width := 0
	if raw := r.URL.Query().Get("w"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			server.RespondError(w, http.StatusBadRequest, "w must be an integer")
			return
		}
		width = parsed
	}

	art, err := h.artwork.Resized(r.Context(), rawURL, width)
	if err != nil {
		respondArtworkError(w, err)
		return
	}

	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(art.Blob); err != nil {
		slog.Debug("failed to write artwork response", "error", err)
	}
}

func respondArtworkError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecases.ErrEmptyURL), errors.Is(err, usecases.ErrInvalidWidth):
		server.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecases.ErrUpstream):
		server.RespondError(w, http.StatusBadGateway, "unable to fetch artwork")
	default:
		slog.Error("artwork request failed", "error", err)
		server.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
