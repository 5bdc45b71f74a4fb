/* fixtures_test.go
 * Contains provider JSON builders shared by the api package tests
 * Authors: Zachary Bower
 */

package api

import (
	"fmt"
	"testing"

	"sportsstats-bot/api/external"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func standingsRow(rank int, name string) gjson.Result {
	return gjson.Parse(fmt.Sprintf(`{
		"rank": %d,
		"team": {"id": %d, "name": %q, "logo": "https://media.api-sports.io/football/teams/%d.png"},
		"points": %d,
		"all": {"win": 10, "draw": 2, "lose": 1},
		"home": {"win": 6, "draw": 1, "lose": 0},
		"away": {"win": 4, "draw": 1, "lose": 1}
	}`, rank, rank, name, rank, 40-rank))
}

func standingsTable(n int) []gjson.Result {
	rows := make([]gjson.Result, n)
	for i := range rows {
		rows[i] = standingsRow(i+1, fmt.Sprintf("Team %d", i+1))
	}
	return rows
}

func finishedFixture(id int, home string, away string, homeGoals int, awayGoals int) gjson.Result {
	return gjson.Parse(fmt.Sprintf(`{
		"fixture": {"id": %d, "date": "2024-08-%02dT14:00:00+00:00", "venue": {"name": "Stadium %d", "city": "London"}},
		"league": {"round": "Regular Season - %d"},
		"teams": {"home": {"name": %q}, "away": {"name": %q}},
		"goals": {"home": %d, "away": %d}
	}`, id, id%28+1, id, id, home, away, homeGoals, awayGoals))
}

func upcomingFixture(id int, home string, away string) gjson.Result {
	return gjson.Parse(fmt.Sprintf(`{
		"fixture": {"id": %d, "date": "2025-03-%02dT15:00:00+00:00", "venue": {"name": "Stadium %d", "city": "London"}},
		"league": {"round": "Regular Season - %d"},
		"teams": {"home": {"name": %q}, "away": {"name": %q}},
		"goals": {"home": null, "away": null}
	}`, id, id%28+1, id, id, home, away))
}

func predictionFor(winner string) gjson.Result {
	return gjson.Parse(fmt.Sprintf(`{"predictions": {"winner": {"id": 1, "name": %q, "comment": "Win or draw"}}}`, winner))
}

func arsenal() external.Team {
	return external.Team{
		ID:   42,
		Name: "Arsenal",
		Raw: gjson.Parse(`{
			"team": {"id": 42, "name": "Arsenal", "logo": "https://media.api-sports.io/football/teams/42.png"},
			"venue": {"name": "Emirates Stadium", "address": "Queensland Road", "city": "London", "capacity": 60383, "surface": "grass"}
		}`),
	}
}

func arsenalStats() gjson.Result {
	return gjson.Parse(`{
		"team": {"id": 42, "name": "Arsenal", "logo": "https://media.api-sports.io/football/teams/42.png"},
		"fixtures": {
			"wins": {"home": 5, "away": 4, "total": 9},
			"draws": {"home": 1, "away": 0, "total": 1},
			"loses": {"home": 0, "away": 1, "total": 1}
		},
		"goals": {
			"for": {"total": {"home": 14, "away": 9, "total": 23}},
			"against": {"total": {"home": 3, "away": 4, "total": 7}}
		}
	}`)
}

// testAPI returns an API wired to fresh mocks and an observed logger
func testAPI(t *testing.T) (*API, *MockProvider, *MockStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	provider := NewMockProvider()
	favorites := NewMockStore()
	return NewAPI(provider, favorites, WithLogger(zap.New(core))), provider, favorites, logs
}
