/* models.go
 * Canonical records built from raw API-Football data. Every record is validated as a unit at extraction time,
 * so the renderer can trust every field it reads
 * Authors: Zachary Bower
 */

package records

// Kind tags which canonical record a raw provider record should be extracted into
type Kind string

const (
	KindStandingsRow Kind = "standings_row"
	KindTeamStats    Kind = "team_stats"
	KindPastGame     Kind = "past_game"
	KindFutureGame   Kind = "future_game"
	KindPrediction   Kind = "prediction"
)

// PredictionUnavailable is shown in place of a predicted winner when the provider has none
const PredictionUnavailable = "Prediction Unavailable"

// Record is implemented by every canonical record
type Record interface {
	Kind() Kind
}

// Split holds a count broken down by venue
type Split struct {
	Total int
	Home  int
	Away  int
}

// WDL is one win/draw/loss line
type WDL struct {
	Wins   int
	Draws  int
	Losses int
}

// TeamSummary is one row of the league standings
type TeamSummary struct {
	Name    string
	Rank    int
	LogoURL string
	Points  int
	All     WDL
	Home    WDL
	Away    WDL
}

func (TeamSummary) Kind() Kind { return KindStandingsRow }

// Venue describes a team's home ground
type Venue struct {
	Name     string
	Address  string
	City     string
	Capacity int
	Surface  string
}

// TeamStats is the season summary for a single team
type TeamStats struct {
	Name         string
	LogoURL      string
	Wins         Split
	Draws        Split
	Losses       Split
	GoalsFor     Split
	GoalsAgainst Split
	Venue        Venue
}

func (TeamStats) Kind() Kind { return KindTeamStats }

// PastGame is a completed fixture. Winner is always one of HomeName or AwayName
type PastGame struct {
	HomeName   string
	AwayName   string
	HomeGoals  int
	AwayGoals  int
	VenueName  string
	VenueCity  string
	Kickoff    string
	Winner     string
	AwayWinner bool
}

func (PastGame) Kind() Kind { return KindPastGame }

// FutureGame is a fixture that has not started yet
type FutureGame struct {
	FixtureID       int
	HomeName        string
	AwayName        string
	VenueName       string
	VenueCity       string
	Round           string
	Kickoff         string
	PredictedWinner string
}

func (FutureGame) Kind() Kind { return KindFutureGame }

// Prediction is the provider's predicted winner for a fixture
type Prediction struct {
	Winner string
}

func (Prediction) Kind() Kind { return KindPrediction }

// WinnerOrUnavailable returns the predicted winner, or the unavailable marker when there is none
func (p Prediction) WinnerOrUnavailable() string {
	if p.Winner == "" {
		return PredictionUnavailable
	}
	return p.Winner
}
