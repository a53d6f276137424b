package presentation

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/status/application"
	"github.com/klyne/auralis/internal/server"
)

// StatusHandler serves health and status endpoints.
type StatusHandler struct {
	interactor *application.StatusInteractor
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{
		interactor: application.NewStatusInteractor(),
	}
}

// RegisterRoutes mounts the status routes on the router.
func (h *StatusHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/status", h.handleStatus).Methods(http.MethodGet)
}

func (h *StatusHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (h *StatusHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	server.RespondJSON(w, http.StatusOK, h.interactor.Execute())
}
