/* api.go
 * This file contains the public methods for interacting with this package. The bot and web layers should only call
 * the API type, never the sub packages for fetching, extraction and rendering directly
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"time"

	"sportsstats-bot/api/external"
	"sportsstats-bot/api/metrics"
	"sportsstats-bot/api/store"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultLeagueName is used in card headers when no league name is configured
const DefaultLeagueName = "English Premier League"

// Provider is the football data source. *external.Client implements it
type Provider interface {
	Fetch(ctx context.Context, q external.Query) ([]gjson.Result, error)
	Predict(ctx context.Context, fixtureID int) (gjson.Result, error)
	ResolveTeam(ctx context.Context, name string) (external.Team, error)
}

// Ensure the real client satisfies Provider
var _ Provider = (*external.Client)(nil)

// API provides the bot's commands: card operations that send to a sink, the home view and favourite teams
type API struct {
	Provider   Provider
	Store      store.Interface
	Logger     *zap.Logger
	Metrics    *metrics.Recorder
	LeagueName string
	Now        func() time.Time
}

// Option configures an API
type Option func(*API)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.Logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(a *API) {
		a.Metrics = recorder
	}
}

// WithLeagueName overrides DefaultLeagueName
func WithLeagueName(name string) Option {
	return func(a *API) {
		if name != "" {
			a.LeagueName = name
		}
	}
}

// WithClock overrides the clock used for the home view timestamp
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		if now != nil {
			a.Now = now
		}
	}
}

// NewAPI creates a new API instance with the provided collaborators
// Preconditions: Receives a provider and a favourite store. Either may be nil in tests that never reach them
// Postconditions: Returns an API with defaults filled in for every unset option
func NewAPI(provider Provider, favorites store.Interface, opts ...Option) *API {
	a := &API{
		Provider:   provider,
		Store:      favorites,
		Logger:     zap.NewNop(),
		LeagueName: DefaultLeagueName,
		Now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close disconnects the favourite store
func (a *API) Close(ctx context.Context) error {
	if a.Store == nil || a.Store.GetClient() == nil {
		return nil
	}
	return a.Store.GetClient().Disconnect(ctx)
}
