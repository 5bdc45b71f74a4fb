/* extract.go
 * Contains the logic for mapping raw API-Football records onto canonical records. Extraction is a pure function:
 * no network I/O and no rendering. A record is either fully populated or rejected with ErrMalformedUpstreamData
 * Authors: Zachary Bower
 */

package records

import (
	"fmt"
	"time"

	"sportsstats-bot/api/shared"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KickoffLayout is the single textual form every kickoff timestamp is normalised to (always UTC)
const KickoffLayout = "2006-01-02 15:04"

// Extract dispatches raw to the extractor for kind. aux carries the team+venue record for KindTeamStats and
// the prediction record (possibly absent) for KindFutureGame, and is ignored otherwise
func Extract(kind Kind, raw gjson.Result, aux gjson.Result) (Record, error) {
	switch kind {
	case KindStandingsRow:
		return ExtractTeamSummary(raw)
	case KindTeamStats:
		return ExtractTeamStats(raw, aux)
	case KindPastGame:
		return ExtractPastGame(raw)
	case KindFutureGame:
		// A broken prediction never sinks the fixture itself
		prediction, _ := ExtractPrediction(aux)
		return ExtractFutureGame(raw, prediction.WinnerOrUnavailable())
	case KindPrediction:
		return ExtractPrediction(raw)
	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", shared.ErrMalformedUpstreamData, kind)
	}
}

// ExtractTeamSummary maps one standings row
// Preconditions: Receives one element of response[0].league.standings[0]
// Postconditions: Returns a TeamSummary, or an error if any required field is missing or mistyped
func ExtractTeamSummary(raw gjson.Result) (TeamSummary, error) {
	f := fields{raw: raw}
	summary := TeamSummary{
		Name:    f.text("team.name"),
		Rank:    f.number("rank"),
		LogoURL: f.text("team.logo"),
		Points:  f.number("points"),
		All:     f.wdl("all"),
		Home:    f.wdl("home"),
		Away:    f.wdl("away"),
	}
	if f.err != nil {
		return TeamSummary{}, f.err
	}
	if summary.Rank < 1 {
		return TeamSummary{}, fmt.Errorf("%w: rank %d is not a 1-based position", shared.ErrMalformedUpstreamData, summary.Rank)
	}
	return summary, nil
}

// ExtractTeamStats maps the teams/statistics response together with the team info record that carries the venue
// Preconditions: Receives the statistics object and one element of the /teams response
// Postconditions: Returns a TeamStats, or an error if any required field in either record is missing or mistyped
func ExtractTeamStats(stats gjson.Result, info gjson.Result) (TeamStats, error) {
	s := fields{raw: stats}
	v := fields{raw: info}

	teamStats := TeamStats{
		Name:         s.text("team.name"),
		LogoURL:      s.text("team.logo"),
		Wins:         s.split("fixtures.wins"),
		Draws:        s.split("fixtures.draws"),
		Losses:       s.split("fixtures.loses"),
		GoalsFor:     s.split("goals.for.total"),
		GoalsAgainst: s.split("goals.against.total"),
		Venue: Venue{
			Name:     v.text("venue.name"),
			Address:  v.text("venue.address"),
			City:     v.text("venue.city"),
			Capacity: v.number("venue.capacity"),
			Surface:  titleCase(v.text("venue.surface")),
		},
	}
	if s.err != nil {
		return TeamStats{}, s.err
	}
	if v.err != nil {
		return TeamStats{}, v.err
	}
	return teamStats, nil
}

// ExtractPastGame maps a finished fixture and derives the winner from the score
// Preconditions: Receives one element of the /fixtures response with status FT
// Postconditions: Returns a PastGame, or an error if any required field is missing or mistyped
func ExtractPastGame(raw gjson.Result) (PastGame, error) {
	f := fields{raw: raw}
	game := PastGame{
		HomeName:  f.text("teams.home.name"),
		AwayName:  f.text("teams.away.name"),
		HomeGoals: f.number("goals.home"),
		AwayGoals: f.number("goals.away"),
		VenueName: f.text("fixture.venue.name"),
		VenueCity: f.text("fixture.venue.city"),
		Kickoff:   f.kickoff("fixture.date"),
	}
	if f.err != nil {
		return PastGame{}, f.err
	}

	// A draw is reported as a home win
	game.AwayWinner = game.AwayGoals > game.HomeGoals
	if game.AwayWinner {
		game.Winner = game.AwayName
	} else {
		game.Winner = game.HomeName
	}
	return game, nil
}

// ExtractFutureGame maps an upcoming fixture. predictedWinner comes from a separate prediction lookup and should
// already be PredictionUnavailable when that lookup failed
func ExtractFutureGame(raw gjson.Result, predictedWinner string) (FutureGame, error) {
	f := fields{raw: raw}
	game := FutureGame{
		FixtureID: f.number("fixture.id"),
		HomeName:  f.text("teams.home.name"),
		AwayName:  f.text("teams.away.name"),
		VenueName: f.text("fixture.venue.name"),
		VenueCity: f.text("fixture.venue.city"),
		Round:     f.text("league.round"),
		Kickoff:   f.kickoff("fixture.date"),
	}
	if f.err != nil {
		return FutureGame{}, f.err
	}
	if predictedWinner == "" {
		predictedWinner = PredictionUnavailable
	}
	game.PredictedWinner = predictedWinner
	return game, nil
}

// ExtractPrediction maps one element of the /predictions response. A null winner is valid and means the
// provider has no prediction
func ExtractPrediction(raw gjson.Result) (Prediction, error) {
	winner := raw.Get("predictions.winner")
	if !winner.IsObject() {
		return Prediction{}, fmt.Errorf("%w: predictions.winner is not an object", shared.ErrMalformedUpstreamData)
	}
	name := winner.Get("name")
	if name.Type != gjson.String {
		return Prediction{}, nil
	}
	return Prediction{Winner: name.String()}, nil
}

// fields reads typed values out of a raw record, remembering the first failure so a record can be
// assembled in one expression and rejected as a unit
type fields struct {
	raw gjson.Result
	err error
}

func (f *fields) fail(path string, want string) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: %s is missing or not %s", shared.ErrMalformedUpstreamData, path, want)
	}
}

func (f *fields) text(path string) string {
	v := f.raw.Get(path)
	if v.Type != gjson.String {
		f.fail(path, "a string")
		return ""
	}
	return v.String()
}

func (f *fields) number(path string) int {
	v := f.raw.Get(path)
	if v.Type != gjson.Number || float64(v.Int()) != v.Num {
		f.fail(path, "an integer")
		return 0
	}
	if v.Int() < 0 {
		f.fail(path, "a non-negative integer")
		return 0
	}
	return int(v.Int())
}

func (f *fields) object(path string) bool {
	if !f.raw.Get(path).IsObject() {
		f.fail(path, "an object")
		return false
	}
	return true
}

func (f *fields) wdl(path string) WDL {
	if !f.object(path) {
		return WDL{}
	}
	return WDL{
		Wins:   f.number(path + ".win"),
		Draws:  f.number(path + ".draw"),
		Losses: f.number(path + ".lose"),
	}
}

func (f *fields) split(path string) Split {
	if !f.object(path) {
		return Split{}
	}
	return Split{
		Total: f.number(path + ".total"),
		Home:  f.number(path + ".home"),
		Away:  f.number(path + ".away"),
	}
}

func (f *fields) kickoff(path string) string {
	raw := f.text(path)
	if f.err != nil {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		f.fail(path, "an RFC 3339 timestamp")
		return ""
	}
	return t.UTC().Format(KickoffLayout)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
