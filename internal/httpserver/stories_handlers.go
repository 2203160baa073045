package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// handleBestStories serves GET /beststories/{count}
func (s *Server) handleBestStories(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["count"]
	count, err := strconv.Atoi(raw)
	if err != nil {
		s.writeErrorResponse(w, "count must be an integer", http.StatusBadRequest)
		return
	}

	stories, err := s.stories.BestStories(r.Context(), count)
	if err != nil {
		s.responder.Write(w, err)
		return
	}

	s.logger.Debug("Served best stories",
		zap.Int("count", count),
		zap.Int("returned", len(stories)),
		zap.String("request_id", requestIDFrom(r.Context())))
	s.writeResponse(w, stories)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC(),
	})
}
