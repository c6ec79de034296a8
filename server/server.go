package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Trainer is what the HTTP adapter drives. *engine.Engine satisfies it.
type Trainer interface {
	HandleMessage(raw []byte)
	NewCard()
	Reset()
	NewProgressionIfDone() bool
	UpdateSettings(update func(model.Settings) (model.Settings, error)) error
	EnableInput(devices []string)
	DisableInput(reason string)
	Snapshot() model.Snapshot
	Subscribe(fn func(model.Snapshot)) func()
}

type server struct {
	trainer Trainer
	logger  *zap.Logger
}

// NewRouter exposes a trainer as a small JSON API plus a server-sent event
// stream of snapshots.
func NewRouter(trainer Trainer, logger *zap.Logger, allowedOrigins []string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &server{trainer: trainer, logger: logger}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.logRequests)
	router.HandleFunc("/state", s.handleState).Methods("GET")
	router.HandleFunc("/events", s.handleEvents).Methods("GET")
	router.HandleFunc("/midi", s.handleMessage).Methods("POST")
	router.HandleFunc("/card", s.handleNewCard).Methods("POST")
	router.HandleFunc("/reset", s.handleReset).Methods("POST")
	router.HandleFunc("/progression/next", s.handleNextProgression).Methods("POST")
	router.HandleFunc("/settings", s.handleSettings).Methods("PUT")
	router.HandleFunc("/input", s.handleInput).Methods("PUT")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("http: could not encode response", zap.Error(err))
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *server) readBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "could not read request body")
		return false
	}
	if err := json.Unmarshal(reqBody, v); err != nil {
		s.writeError(w, http.StatusBadRequest, "could not unmarshal request body: "+err.Error())
		return false
	}
	return true
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.trainer.Snapshot())
}

func (s *server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var input model.MessageRequestBody
	if !s.readBody(w, r, &input) {
		return
	}
	if len(input.Data) != 3 {
		s.writeError(w, http.StatusBadRequest, "a message is exactly 3 bytes")
		return
	}
	raw := make([]byte, len(input.Data))
	for i, b := range input.Data {
		if b < 0 || b > 255 {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("byte %d out of range: %d", i, b))
			return
		}
		raw[i] = byte(b)
	}
	s.trainer.HandleMessage(raw)
	s.writeJSON(w, http.StatusAccepted, s.trainer.Snapshot())
}

func (s *server) handleNewCard(w http.ResponseWriter, r *http.Request) {
	s.trainer.NewCard()
	s.writeJSON(w, http.StatusOK, s.trainer.Snapshot())
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.trainer.Reset()
	s.writeJSON(w, http.StatusOK, s.trainer.Snapshot())
}

func (s *server) handleNextProgression(w http.ResponseWriter, r *http.Request) {
	if !s.trainer.NewProgressionIfDone() {
		s.writeError(w, http.StatusConflict, "no finished progression to replace")
		return
	}
	s.writeJSON(w, http.StatusOK, s.trainer.Snapshot())
}

func (s *server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var input model.SettingsRequestBody
	if !s.readBody(w, r, &input) {
		return
	}
	err := s.trainer.UpdateSettings(func(current model.Settings) (model.Settings, error) {
		return current.Merge(input)
	})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.trainer.Snapshot())
}

func (s *server) handleInput(w http.ResponseWriter, r *http.Request) {
	var input model.InputRequestBody
	if !s.readBody(w, r, &input) {
		return
	}
	if input.Enabled {
		s.trainer.EnableInput(input.Devices)
	} else {
		reason := input.Reason
		if reason == "" {
			reason = "input disabled"
		}
		s.trainer.DisableInput(reason)
	}
	s.writeJSON(w, http.StatusOK, s.trainer.Snapshot())
}

// handleEvents streams snapshots until the client goes away. Only the
// newest pending snapshot is kept for a slow client.
func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	latest := make(chan model.Snapshot, 1)
	unsubscribe := s.trainer.Subscribe(func(snap model.Snapshot) {
		for {
			select {
			case latest <- snap:
				return
			default:
			}
			select {
			case <-latest:
			default:
			}
		}
	})
	defer unsubscribe()

	var sent uint64
	send := func(snap model.Snapshot) bool {
		if snap.Version <= sent {
			return true
		}
		data, err := json.Marshal(snap)
		if err != nil {
			s.logger.Warn("http: could not encode snapshot", zap.Error(err))
			return true
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		sent = snap.Version
		return true
	}

	if !send(s.trainer.Snapshot()) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-latest:
			if !send(snap) {
				return
			}
		}
	}
}
