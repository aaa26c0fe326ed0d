package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"AppEvents/internal/core/ports"
	"AppEvents/internal/shared/config"
)

const defaultRecentLimit = 20

// Server is the sample HTTP surface of the application. Its only job is to
// demonstrate the lifecycle: the controller starts it between Starting and
// Started and shuts it down between Stopping and Stopped.
type Server struct {
	httpServer *http.Server
	addr       string
	log        zerolog.Logger
}

// NewServer creates the server. journal may be nil; the events endpoint then
// reports that journaling is disabled.
func NewServer(cfg *config.HTTPConfig, journal ports.EventJournal, baseLogger *zerolog.Logger) *Server {
	log := baseLogger.With().Str("component", "web_server").Logger()

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Addr,
			Handler: newRouter(journal, log),
		},
		addr: cfg.Addr,
		log:  log,
	}
}

// Start binds the listener and begins serving in the background. It returns
// once the listener is bound, so a failed bind surfaces to the lifecycle
// controller instead of dying silently in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server stopped unexpectedly")
		}
	}()

	s.log.Info().Str("addr", listener.Addr().String()).Msg("HTTP server listening")
	return nil
}

// Shutdown stops the server gracefully within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// newRouter wires the handlers. Split out from NewServer so tests can drive
// the routes through httptest without binding a socket.
func newRouter(journal ports.EventJournal, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/events/recent", func(w http.ResponseWriter, req *http.Request) {
		if journal == nil {
			http.Error(w, "event journal is not configured", http.StatusServiceUnavailable)
			return
		}

		limit := defaultRecentLimit
		if raw := req.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		records, err := journal.Recent(req.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read recent events")
			http.Error(w, "failed to read recent events", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}).Methods(http.MethodGet)

	return r
}
