/* client_test.go
 * Contains unit tests for client.go and teams.go using httptest
 * Authors: Zachary Bower
 */

package external

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sportsstats-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standingsBody = `{
	"errors": [],
	"response": [{
		"league": {
			"id": 39,
			"standings": [[
				{"rank": 1, "team": {"id": 42, "name": "Arsenal"}},
				{"rank": 2, "team": {"id": 50, "name": "Manchester City"}}
			]]
		}
	}]
}`

// newTestClient starts a server running handler and returns a client pointed at it
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, APIKey: "secret", Season: 2024})
}

// region Fetch

func TestFetch_Standings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/standings", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-apisports-key"))
		assert.Equal(t, "39", r.URL.Query().Get("league"))
		assert.Equal(t, "2024", r.URL.Query().Get("season"))
		assert.Empty(t, r.URL.Query().Get("team"))
		w.Write([]byte(standingsBody))
	})

	rows, err := client.Fetch(context.Background(), Query{Kind: Standings})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Arsenal", rows[0].Get("team.name").String())
	assert.Equal(t, int64(2), rows[1].Get("rank").Int())
}

func TestFetch_StandingsEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [], "response": []}`))
	})

	rows, err := client.Fetch(context.Background(), Query{Kind: Standings})

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetch_StandingsWithoutTable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [], "response": [{"league": {}}]}`))
	})

	_, err := client.Fetch(context.Background(), Query{Kind: Standings})

	assert.ErrorIs(t, err, shared.ErrMalformedUpstreamData)
}

func TestFetch_FixturesWithTeamAndStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("team"))
		assert.Equal(t, StatusFinished, r.URL.Query().Get("status"))
		w.Write([]byte(`{"errors": [], "response": [{"fixture": {"id": 1}}, {"fixture": {"id": 2}}, {"fixture": {"id": 3}}]}`))
	})

	fixtures, err := client.Fetch(context.Background(), Query{Kind: Fixtures, TeamID: 42, Status: StatusFinished})

	require.NoError(t, err)
	require.Len(t, fixtures, 3)
	assert.Equal(t, int64(3), fixtures[2].Get("fixture.id").Int())
}

func TestFetch_Statistics(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/statistics", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("team"))
		w.Write([]byte(`{"errors": [], "response": {"team": {"name": "Arsenal"}, "fixtures": {}}}`))
	})

	stats, err := client.Fetch(context.Background(), Query{Kind: Statistics, TeamID: 42})

	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Arsenal", stats[0].Get("team.name").String())
}

func TestNewClient_LeagueDefaults(t *testing.T) {
	assert.Equal(t, DefaultLeagueID, NewClient(Config{}).LeagueID())
	assert.Equal(t, 140, NewClient(Config{LeagueID: 140}).LeagueID())
}

func TestFetch_StatisticsNeedsTeam(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Fetch(context.Background(), Query{Kind: Statistics})

	assert.Error(t, err)
}

func TestFetch_UnknownKind(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Fetch(context.Background(), Query{Kind: "players"})

	assert.Error(t, err)
}

func TestFetch_GzipResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		var buf bytes.Buffer
		gzWriter := gzip.NewWriter(&buf)
		gzWriter.Write([]byte(standingsBody))
		gzWriter.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	})

	rows, err := client.Fetch(context.Background(), Query{Kind: Standings})

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFetch_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"not found", http.StatusNotFound, ``},
		{"invalid json", http.StatusOK, `{"response": [`},
		{"error array", http.StatusOK, `{"errors": ["rate limit"], "response": []}`},
		{"error object", http.StatusOK, `{"errors": {"token": "Error/Missing application key."}, "response": []}`},
		{"no response member", http.StatusOK, `{"errors": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			rows, err := client.Fetch(context.Background(), Query{Kind: Fixtures})

			assert.Nil(t, rows)
			assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
		})
	}
}

func TestFetch_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Fetch(context.Background(), Query{Kind: Fixtures})

	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
}

func TestFetch_ObserveHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var endpoints []string
	var outcomes []error
	client := NewClient(Config{BaseURL: server.URL, Observe: func(endpoint string, err error) {
		endpoints = append(endpoints, endpoint)
		outcomes = append(outcomes, err)
	}})

	_, _ = client.Fetch(context.Background(), Query{Kind: Standings})

	assert.Equal(t, []string{"standings"}, endpoints)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0], shared.ErrUpstreamUnavailable)
}

// endregion

// region Predict

func TestPredict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predictions", r.URL.Path)
		assert.Equal(t, "1035037", r.URL.Query().Get("fixture"))
		w.Write([]byte(`{"errors": [], "response": [{"predictions": {"winner": {"id": 42, "name": "Arsenal"}}}]}`))
	})

	prediction, err := client.Predict(context.Background(), 1035037)

	require.NoError(t, err)
	assert.Equal(t, "Arsenal", prediction.Get("predictions.winner.name").String())
}

func TestPredict_NoPrediction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [], "response": []}`))
	})

	prediction, err := client.Predict(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, prediction.Exists())
}

// endregion

// region ResolveTeam

func TestResolveTeam_ExactName(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/teams", r.URL.Path)
		assert.Equal(t, "Arsenal", r.URL.Query().Get("name"))
		w.Write([]byte(`{"errors": [], "response": [{"team": {"id": 42, "name": "Arsenal"}, "venue": {"name": "Emirates Stadium"}}]}`))
	})

	team, err := client.ResolveTeam(context.Background(), "Arsenal")

	require.NoError(t, err)
	assert.Equal(t, 42, team.ID)
	assert.Equal(t, "Arsenal", team.Name)
	assert.Equal(t, "Emirates Stadium", team.Raw.Get("venue.name").String())
	assert.Equal(t, 1, calls)
}

func TestResolveTeam_FallsBackToSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("name") != "" {
			w.Write([]byte(`{"errors": [], "response": []}`))
			return
		}
		assert.Equal(t, "Manchester", q.Get("search"))
		assert.Equal(t, "39", q.Get("league"))
		assert.Equal(t, "2024", q.Get("season"))
		w.Write([]byte(`{"errors": [], "response": [
			{"team": {"id": 33, "name": "Manchester United"}},
			{"team": {"id": 50, "name": "Manchester City"}}
		]}`))
	})

	team, err := client.ResolveTeam(context.Background(), "Manchester")

	require.NoError(t, err)
	assert.Equal(t, 50, team.ID)
	assert.Equal(t, "Manchester City", team.Name)
}

func TestResolveTeam_Unknown(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"errors": [], "response": []}`))
	})

	_, err := client.ResolveTeam(context.Background(), "NoSuchTeam")

	assert.ErrorIs(t, err, shared.ErrUnknownTeam)
	assert.Equal(t, 2, calls)
}

func TestResolveTeam_ShortNameSkipsSearch(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"errors": [], "response": []}`))
	})

	_, err := client.ResolveTeam(context.Background(), "Xy")

	assert.ErrorIs(t, err, shared.ErrUnknownTeam)
	assert.Equal(t, 1, calls)
}

func TestResolveTeam_EmptyName(t *testing.T) {
	_, err := NewClient(Config{}).ResolveTeam(context.Background(), "")

	assert.ErrorIs(t, err, shared.ErrUnknownTeam)
}

func TestResolveTeam_UpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ResolveTeam(context.Background(), "Arsenal")

	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	assert.NotErrorIs(t, err, shared.ErrUnknownTeam)
}

// endregion

// region Season

func TestSeason(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before august", time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC), 2024},
		{"august", time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), 2025},
		{"december", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), 2025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(Config{})
			client.now = func() time.Time { return tt.now }
			assert.Equal(t, tt.want, client.Season())
		})
	}
}

func TestSeason_Configured(t *testing.T) {
	client := NewClient(Config{Season: 2023})
	assert.Equal(t, 2023, client.Season())
}

func TestNormaliseBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, normaliseBaseURL(""))
	assert.Equal(t, "http://localhost:8080/", normaliseBaseURL("http://localhost:8080"))
	assert.Equal(t, "http://localhost:8080/", normaliseBaseURL(" http://localhost:8080/ "))
}

// endregion
