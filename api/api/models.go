/* models.go
 * This file contain the structs used by the card operations to describe what each command shows and says
 * Authors: Zachary Bower
 */

package api

// Operation names, used in logs and metrics
const (
	OpStandings = "standings"
	OpTeam      = "team"
	OpPastGames = "pastgames"
	OpNextGames = "nextgames"
	OpHome      = "home"
	OpFaveSet   = "faveset"
	OpFaveGet   = "faveget"
	OpFaveDel   = "favedel"
)

// Number of records shown by the windowed cards
const (
	GamesWindow        = 3
	HomeStandingsLimit = 3
)

// cardText holds the user facing text for one card operation
type cardText struct {
	op       string
	fallback string
	// unavailable is sent when the provider cannot be reached or the team cannot be resolved
	unavailable string
	// malformed is sent when the provider's data cannot be turned into a card
	malformed string
}

var (
	standingsText = cardText{
		op:          OpStandings,
		fallback:    "EPL Standings Card",
		unavailable: "Unable to get standings. Please try again later.",
		malformed:   "Error in standings data from API. Please try again later.",
	}
	teamStatsText = cardText{
		op:          OpTeam,
		fallback:    "EPL Team Stats Card",
		unavailable: "Unable to get team stats. Please ensure you have provided a valid EPL team name or try again later.",
		malformed:   "Error in stats data from API. Please try again later.",
	}
	pastGamesText = cardText{
		op:          OpPastGames,
		fallback:    "EPL Team Info Card",
		unavailable: "Unable to get past games. Please ensure you have provided a valid EPL team name or try again later.",
		malformed:   "Error in past games data from API. Please try again later.",
	}
	nextGamesText = cardText{
		op:          OpNextGames,
		fallback:    "EPL Team Info Card",
		unavailable: "Unable to get upcoming games. Please ensure you have provided a valid EPL team name or try again later.",
		malformed:   "Error in upcoming games data from API. Please try again later.",
	}
)
