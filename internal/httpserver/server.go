package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-best-stories/internal/config"
	"go-best-stories/internal/failure"
	"go-best-stories/internal/interfaces"
)

const (
	defaultWriteTimeout = 30 * time.Second
	writeTimeoutMargin  = 5 * time.Second
)

// Server represents the best stories HTTP server
type Server struct {
	stories   interfaces.StoriesProvider
	responder *failure.Responder
	cfg       config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a new HTTP server
func NewServer(stories interfaces.StoriesProvider, responder *failure.Responder, cfg config.ServerConfig, logger *zap.Logger) *Server {
	s := &Server{
		stories:   stories,
		responder: responder,
		cfg:       cfg,
		logger:    logger,
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// writeTimeout leaves room to write the failure response after the request
// deadline fires
func writeTimeout(cfg config.ServerConfig) time.Duration {
	return max(defaultWriteTimeout, cfg.GetRequestTimeout()+writeTimeoutMargin)
}

// Start listens on the Unix socket when one is configured, TCP otherwise.
// It blocks until the server stops; a graceful stop returns nil.
func (s *Server) Start() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}

	err = s.server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) listen() (net.Listener, error) {
	if s.cfg.SocketPath == "" {
		s.logger.Info("Starting best stories HTTP server", zap.String("address", s.cfg.Address))
		return net.Listen("tcp", s.cfg.Address)
	}

	// Remove existing socket file
	if err := os.RemoveAll(s.cfg.SocketPath); err != nil {
		s.logger.Warn("Failed to remove existing socket file", zap.String("path", s.cfg.SocketPath), zap.Error(err))
	}

	listener, err := net.Listen("unix", s.cfg.SocketPath)
	if err != nil {
		return nil, err
	}

	if err := os.Chmod(s.cfg.SocketPath, 0660); err != nil {
		s.logger.Warn("Failed to set socket permissions", zap.String("path", s.cfg.SocketPath), zap.Error(err))
	}

	s.logger.Info("Starting best stories HTTP server on Unix socket", zap.String("socket_path", s.cfg.SocketPath))
	return listener, nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping best stories HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the router with its middleware chain
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.requestIDMiddleware, s.loggingMiddleware, s.recoverMiddleware)

	bestStories := s.timeoutMiddleware(http.HandlerFunc(s.handleBestStories))
	router.Handle("/beststories/{count}", bestStories).Methods(http.MethodGet)
	router.Handle("/BestStories/{count}", bestStories).Methods(http.MethodGet)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes a client error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
