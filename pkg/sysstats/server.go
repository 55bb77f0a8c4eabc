package sysstats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// DefaultAddr is where the stats daemon listens unless configured
// otherwise.
const DefaultAddr = "127.0.0.1:7777"

// Server exposes collected samples over HTTP so the finish invocation can
// fetch them before stopping the daemon.
type Server struct {
	logger     *logrus.Logger
	source     SampleSource
	httpServer *http.Server
}

// NewServer creates a new Server serving source's samples on addr.
func NewServer(logger *logrus.Logger, source SampleSource, addr string) *Server {
	server := &Server{logger: logger, source: source}

	router := mux.NewRouter()
	router.HandleFunc("/stats", server.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/healthz", server.handleHealthz).Methods(http.MethodGet)

	server.httpServer = &http.Server{Addr: addr, Handler: router}
	return server
}

// Run serves until GracefulStop is called.
func (s *Server) Run() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("stats server listening")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// GracefulStop drains in-flight requests and shuts the server down.
func (s *Server) GracefulStop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.WithError(err).Warn("failed to shut down stats server")
	}
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	content, err := json.Marshal(s.source.Samples())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(content); err != nil {
		s.logger.WithError(err).Warn("failed to write stats response")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.WithError(err).Warn("failed to write health response")
	}
}
