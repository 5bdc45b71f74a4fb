/* client.go
 * Contains the API-Football v3 client used to fetch standings, fixtures, team statistics and predictions. Responses
 * are returned as raw gjson records, extraction into canonical records happens in the records package
 * Authors: Zachary Bower
 */

package external

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sportsstats-bot/api/shared"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the API-Football v3 endpoint
	DefaultBaseURL = "https://v3.football.api-sports.io/"
	// DefaultLeagueID is the English Premier League
	DefaultLeagueID = 39
	// DefaultTimeout bounds a single provider request when no HTTP client is injected
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is satisfied by *http.Client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds everything the client needs. Nothing is read from the environment here
type Config struct {
	BaseURL  string
	APIKey   string
	LeagueID int
	// Season is the starting year of the season. Zero derives it from the clock
	Season     int
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Logger     *zap.Logger
	// Observe is called once per provider request with the endpoint path and the outcome
	Observe func(endpoint string, err error)
}

// Client talks to API-Football
type Client struct {
	baseURL  string
	apiKey   string
	leagueID int
	season   int
	http     HTTPDoer
	logger   *zap.Logger
	observe  func(endpoint string, err error)
	now      func() time.Time
}

// NewClient creates a provider client from cfg, filling in defaults for anything left unset
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:  normaliseBaseURL(cfg.BaseURL),
		apiKey:   cfg.APIKey,
		leagueID: cfg.LeagueID,
		season:   cfg.Season,
		http:     cfg.HTTPClient,
		logger:   cfg.Logger,
		observe:  cfg.Observe,
		now:      time.Now,
	}
	if c.leagueID == 0 {
		c.leagueID = DefaultLeagueID
	}
	if c.http == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

func normaliseBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// LeagueID returns the league every query is scoped to
func (c *Client) LeagueID() int {
	return c.leagueID
}

// Season returns the configured season, or the season in progress. A season is named by the year it starts in and
// Premier League seasons start in August
func (c *Client) Season() int {
	if c.season > 0 {
		return c.season
	}
	now := c.now().UTC()
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}

// Fetch runs a keyed query and returns the raw ordered list of records it produced
// Preconditions: Receives a query naming an endpoint kind. Statistics queries need a team ID
// Postconditions: Returns the raw records in provider order (possibly empty), or an error wrapping
// ErrUpstreamUnavailable on a transport or format failure
func (c *Client) Fetch(ctx context.Context, q Query) ([]gjson.Result, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(c.leagueID))
	params.Set("season", strconv.Itoa(c.Season()))
	if q.TeamID > 0 {
		params.Set("team", strconv.Itoa(q.TeamID))
	}

	switch q.Kind {
	case Standings:
		response, err := c.get(ctx, "standings", params)
		if err != nil {
			return nil, err
		}
		if len(response.Array()) == 0 {
			return []gjson.Result{}, nil
		}
		rows := response.Get("0.league.standings.0")
		if !rows.IsArray() {
			return nil, fmt.Errorf("%w: standings response has no league table", shared.ErrMalformedUpstreamData)
		}
		return rows.Array(), nil

	case Fixtures:
		if q.Status != "" {
			params.Set("status", q.Status)
		}
		response, err := c.get(ctx, "fixtures", params)
		if err != nil {
			return nil, err
		}
		return response.Array(), nil

	case Statistics:
		if q.TeamID <= 0 {
			return nil, fmt.Errorf("statistics query needs a team id")
		}
		response, err := c.get(ctx, "teams/statistics", params)
		if err != nil {
			return nil, err
		}
		if response.IsObject() {
			return []gjson.Result{response}, nil
		}
		return []gjson.Result{}, nil

	default:
		return nil, fmt.Errorf("unknown endpoint kind %q", q.Kind)
	}
}

// Predict looks up the provider's prediction for a fixture
// Preconditions: Receives a fixture ID
// Postconditions: Returns the first prediction record, an empty result if the provider has none, or an error
func (c *Client) Predict(ctx context.Context, fixtureID int) (gjson.Result, error) {
	params := url.Values{}
	params.Set("fixture", strconv.Itoa(fixtureID))
	response, err := c.get(ctx, "predictions", params)
	if err != nil {
		return gjson.Result{}, err
	}
	return response.Get("0"), nil
}

// get performs one GET request and returns the document's `response` member
func (c *Client) get(ctx context.Context, path string, params url.Values) (result gjson.Result, err error) {
	defer func() {
		if c.observe != nil {
			c.observe(path, err)
		}
	}()

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: failed to create request: %v", shared.ErrUpstreamUnavailable, err)
	}
	request.Header.Set("x-apisports-key", c.apiKey)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Encoding", "gzip")

	c.logger.Debug("provider request", zap.String("endpoint", path), zap.String("query", params.Encode()))

	response, err := c.http.Do(request)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: request to %s failed: %v", shared.ErrUpstreamUnavailable, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("%w: %s returned status %d", shared.ErrUpstreamUnavailable, path, response.StatusCode)
	}

	body, err := readBody(response)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: failed to read %s response: %v", shared.ErrUpstreamUnavailable, path, err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %s returned invalid JSON", shared.ErrUpstreamUnavailable, path)
	}

	doc := gjson.ParseBytes(body)
	// API-Football reports errors with a 200 status, either as a non-empty array or as an object keyed by field
	if errs := doc.Get("errors"); (errs.IsArray() && len(errs.Array()) > 0) || (errs.IsObject() && len(errs.Map()) > 0) {
		return gjson.Result{}, fmt.Errorf("%w: %s returned errors %s", shared.ErrUpstreamUnavailable, path, errs.Raw)
	}
	result = doc.Get("response")
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: %s response has no response member", shared.ErrUpstreamUnavailable, path)
	}
	return result, nil
}

func readBody(response *http.Response) ([]byte, error) {
	if response.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return io.ReadAll(reader)
	}
	return io.ReadAll(response.Body)
}
