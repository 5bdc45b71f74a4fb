/* models.go
 * Contains the models used by the web server
 * Authors: Zachary Bower
 */

package web

import (
	"sportsstats-bot/api/api"
	"sportsstats-bot/api/cards"
	"sportsstats-bot/api/metrics"

	"go.uber.org/zap"
)

// Config holds the configuration for the web server
type Config struct {
	Addr    string
	API     *api.API
	Metrics *metrics.Recorder
	Logger  *zap.Logger
}

// Server is the HTTP server that serves the home view, health checks and metrics
type Server struct {
	api     *api.API
	metrics *metrics.Recorder
	logger  *zap.Logger
}

// HomeResponse is the body returned by the home view endpoint
type HomeResponse struct {
	User   string         `json:"user"`
	Blocks cards.Sequence `json:"blocks"`
	Error  string         `json:"error,omitempty"`
}
