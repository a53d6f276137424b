package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/discovery/application/ports"
	"github.com/klyne/auralis/internal/modules/discovery/application/usecases"
	"github.com/klyne/auralis/internal/server"
)

// Handler exposes track search over HTTP.
type Handler struct {
	search *usecases.SearchService
}

// NewHandler creates a new Handler.
func NewHandler(search *usecases.SearchService) *Handler {
	return &Handler{search: search}
}

// RegisterRoutes attaches the search endpoints. The bare /search path
// is the legacy route older clients still call.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/search", h.searchHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/search", h.searchHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/home", h.homeHandler).Methods(http.MethodGet)
}

func (h *Handler) searchHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	tracks, err := h.search.Search(r.Context(), term)
	if err != nil {
		if errors.Is(err, usecases.ErrEmptyTerm) {
			server.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		server.RespondError(w, http.StatusInternalServerError, "unable to fetch search results")
		return
	}

	if tracks == nil {
		tracks = []ports.Track{}
	}
	server.RespondJSON(w, http.StatusOK, tracks)
}

func (h *Handler) homeHandler(w http.ResponseWriter, r *http.Request) {
	server.RespondJSON(w, http.StatusOK, h.search.Home(r.Context()))
}
