/* handlers.go
 * Contains the HTTP handlers. The home view endpoint is the web equivalent of a chat platform's app home tab
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"net/http"

	"sportsstats-bot/api/cards"

	"go.uber.org/zap"
)

// NewServer creates a Server from cfg
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		api:     cfg.API,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	// bind handler methods that have access to s.api
	mux.HandleFunc("/home", s.HomeHandler)
	mux.HandleFunc("/healthz", s.HealthHandler)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// HomeHandler HTTP endpoint that returns the home view for a user as JSON fragments
// Preconditions: HTTP server has been started, receives a GET request with a user query parameter
// Postconditions: Writes {"user", "blocks"}. Responds 503 when no section of the view could be built
func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := r.URL.Query().Get("user")
	if user == "" {
		writeJSON(w, http.StatusBadRequest, HomeResponse{Blocks: cards.Sequence{}, Error: "user query parameter is required"})
		return
	}

	view, err := s.api.Home(r.Context(), user)
	s.metrics.RecordCommand("home", err)
	if err != nil {
		s.logger.Error("home view request failed", zap.String("user_id", user), zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HomeResponse{User: user, Blocks: cards.Sequence{}, Error: "home view unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, HomeResponse{User: user, Blocks: view})
}

// HealthHandler reports that the server is up
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
