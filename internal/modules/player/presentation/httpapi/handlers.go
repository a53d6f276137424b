package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/player/application/usecases"
	"github.com/klyne/auralis/internal/modules/player/domain"
	"github.com/klyne/auralis/internal/server"
)

// EngineReporter receives state and progress reports from a remote
// playback widget. Nil when the module runs a local engine.
type EngineReporter interface {
	ReportState(state domain.EngineState)
	ReportProgress(elapsed, duration float64)
}

// Handler exposes the transport over HTTP.
type Handler struct {
	transport *usecases.TransportService
	reporter  EngineReporter
	stream    *SSEHub
}

// NewHandler creates a new Handler.
func NewHandler(
	transport *usecases.TransportService,
	reporter EngineReporter,
	stream *SSEHub,
) *Handler {
	return &Handler{
		transport: transport,
		reporter:  reporter,
		stream:    stream,
	}
}

// RegisterRoutes attaches the player endpoints to the given router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	s := r.PathPrefix("/api/player").Subrouter()
	s.HandleFunc("/state", h.stateHandler).Methods(http.MethodGet)
	s.HandleFunc("/queue", h.replaceQueueHandler).Methods(http.MethodPost)
	s.HandleFunc("/queue", h.clearQueueHandler).Methods(http.MethodDelete)
	s.HandleFunc("/queue/append", h.appendQueueHandler).Methods(http.MethodPost)
	s.HandleFunc("/play", h.playHandler).Methods(http.MethodPost)
	s.HandleFunc("/pause", h.pauseHandler).Methods(http.MethodPost)
	s.HandleFunc("/next", h.nextHandler).Methods(http.MethodPost)
	s.HandleFunc("/previous", h.previousHandler).Methods(http.MethodPost)
	s.HandleFunc("/shuffle", h.shuffleHandler).Methods(http.MethodPost)
	s.HandleFunc("/repeat", h.repeatHandler).Methods(http.MethodPost)
	s.HandleFunc("/seek", h.seekHandler).Methods(http.MethodPost)
	s.HandleFunc("/volume", h.volumeHandler).Methods(http.MethodPost)
	s.Handle("/events", h.stream).Methods(http.MethodGet)
	s.HandleFunc("/engine/state", h.engineStateHandler).Methods(http.MethodPost)
	s.HandleFunc("/engine/progress", h.engineProgressHandler).Methods(http.MethodPost)
}

// respondTransportError maps usecase errors onto HTTP status codes.
func respondTransportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecases.ErrInvalidPosition):
		server.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecases.ErrQueueEmpty),
		errors.Is(err, usecases.ErrNoActiveTrack):
		server.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecases.ErrInvalidSeek),
		errors.Is(err, usecases.ErrInvalidVolume),
		errors.Is(err, usecases.ErrInvalidTrack):
		server.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		server.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) stateHandler(w http.ResponseWriter, r *http.Request) {
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

// replaceQueueHandler installs a new browsing queue. Without an index
// the queue is replaced but nothing starts playing.
func (h *Handler) replaceQueueHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tracks []domain.Track `json:"tracks"`
		Index  *int           `json:"index"`
	}
	if err := server.DecodeJSON(r, &body); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	index := -1
	if body.Index != nil {
		index = *body.Index
	}

	if err := h.transport.PlayAll(r.Context(), body.Tracks, index); err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

func (h *Handler) clearQueueHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.transport.Clear(r.Context()); err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

func (h *Handler) appendQueueHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tracks []domain.Track `json:"tracks"`
	}
	if err := server.DecodeJSON(r, &body); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.transport.Enqueue(r.Context(), body.Tracks)
	if err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]int{"added": added})
}

// playHandler resumes playback, jumps to a queue index, or plays an
// ad-hoc track, depending on what the request body carries.
func (h *Handler) playHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index *int          `json:"index"`
		Track *domain.Track `json:"track"`
	}
	if r.ContentLength > 0 {
		if err := server.DecodeJSON(r, &body); err != nil {
			server.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var err error
	switch {
	case body.Track != nil:
		err = h.transport.PlayTrack(r.Context(), *body.Track)
	case body.Index != nil:
		err = h.transport.PlayAt(r.Context(), *body.Index)
	default:
		err = h.transport.Resume(r.Context())
	}
	if err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

// pauseHandler toggles between playing and paused.
func (h *Handler) pauseHandler(w http.ResponseWriter, r *http.Request) {
	playing, err := h.transport.TogglePause(r.Context())
	if err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]bool{"playing": playing})
}

func (h *Handler) nextHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.transport.Next(r.Context()); err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

func (h *Handler) previousHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.transport.Previous(r.Context()); err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

func (h *Handler) shuffleHandler(w http.ResponseWriter, r *http.Request) {
	shuffled := h.transport.ToggleShuffle()
	server.RespondJSON(w, http.StatusOK, map[string]bool{"shuffled": shuffled})
}

func (h *Handler) repeatHandler(w http.ResponseWriter, r *http.Request) {
	mode := h.transport.CycleRepeatMode()
	server.RespondJSON(w, http.StatusOK, map[string]string{"repeatMode": mode.String()})
}

func (h *Handler) seekHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seconds float64 `json:"seconds"`
	}
	if err := server.DecodeJSON(r, &body); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.transport.SeekTo(r.Context(), body.Seconds); err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

func (h *Handler) volumeHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Volume int `json:"volume"`
	}
	if err := server.DecodeJSON(r, &body); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.transport.SetVolume(r.Context(), body.Volume); err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]int{"volume": body.Volume})
}

// engineStateHandler ingests a state report from the remote widget.
func (h *Handler) engineStateHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		State   string `json:"state"`
		Message string `json:"message"`
	}
	if err := server.DecodeJSON(r, &body); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := domain.ParseEngineState(body.State)
	if h.reporter != nil {
		h.reporter.ReportState(state)
	}

	var err error
	if state == domain.EngineError {
		err = h.transport.HandleEngineError(r.Context(), body.Message)
	} else {
		err = h.transport.HandleEngineState(r.Context(), state)
	}
	if err != nil {
		respondTransportError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, h.transport.State(r.Context()))
}

// engineProgressHandler ingests a position report from the remote widget.
func (h *Handler) engineProgressHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Elapsed  float64 `json:"elapsed"`
		Duration float64 `json:"duration"`
	}
	if err := server.DecodeJSON(r, &body); err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.reporter != nil {
		h.reporter.ReportProgress(body.Elapsed, body.Duration)
	}
	w.WriteHeader(http.StatusNoContent)
}
