/* render.go
 * Contains the card templates. Each canonical record maps to a fixed fragment sequence that always ends in a
 * divider. Rendering is pure: all conditional text comes from fields the extractor already computed
 * Authors: Zachary Bower
 */

package cards

import (
	"fmt"

	"sportsstats-bot/api/records"
	"sportsstats-bot/api/shared"
)

// Render builds the fragment sequence for a canonical record
// Preconditions: Receives a record produced by the records package
// Postconditions: Returns the card's fragments, or ErrRenderFailure when the record is nil or of an unknown type
func Render(rec records.Record) (Sequence, error) {
	switch r := rec.(type) {
	case records.TeamSummary:
		return standingsRow(r), nil
	case *records.TeamSummary:
		if r != nil {
			return standingsRow(*r), nil
		}
	case records.TeamStats:
		return teamStats(r), nil
	case *records.TeamStats:
		if r != nil {
			return teamStats(*r), nil
		}
	case records.PastGame:
		return pastGame(r), nil
	case *records.PastGame:
		if r != nil {
			return pastGame(*r), nil
		}
	case records.FutureGame:
		return futureGame(r), nil
	case *records.FutureGame:
		if r != nil {
			return futureGame(*r), nil
		}
	case nil:
	default:
		return nil, fmt.Errorf("%w: no card template for %T", shared.ErrRenderFailure, rec)
	}
	return nil, fmt.Errorf("%w: nil record", shared.ErrRenderFailure)
}

func standingsRow(t records.TeamSummary) Sequence {
	return Sequence{
		sectionWithLogo(fmt.Sprintf("*Rank %d - %s*", t.Rank, t.Name), t.LogoURL),
		section(fmt.Sprintf("*Total Wins*: %d | *Total Draws*: %d | *Total Losses*: %d | *Total Points*: %d",
			t.All.Wins, t.All.Draws, t.All.Losses, t.Points)),
		section(fmt.Sprintf("*Home Wins*: %d | *Home Draws*: %d | *Home Losses*: %d",
			t.Home.Wins, t.Home.Draws, t.Home.Losses)),
		section(fmt.Sprintf("*Away Wins*: %d | *Away Draws*: %d | *Away Losses*: %d",
			t.Away.Wins, t.Away.Draws, t.Away.Losses)),
		divider(),
	}
}

func teamStats(t records.TeamStats) Sequence {
	v := t.Venue
	return Sequence{
		sectionWithLogo(fmt.Sprintf("*Home Venue*: %s - %s, %s | *Capacity*: %d - *Surface*: %s",
			v.Name, v.Address, v.City, v.Capacity, v.Surface), t.LogoURL),
		section(fmt.Sprintf("*Home Wins*: %d | *Home Draws*: %d | *Home Losses*: %d | *Home Goals Scored*: %d | *Home Goals Allowed*: %d",
			t.Wins.Home, t.Draws.Home, t.Losses.Home, t.GoalsFor.Home, t.GoalsAgainst.Home)),
		section(fmt.Sprintf("*Away Wins*: %d | *Away Draws*: %d | *Away Losses*: %d | *Away Goals Scored*: %d | *Away Goals Allowed*: %d",
			t.Wins.Away, t.Draws.Away, t.Losses.Away, t.GoalsFor.Away, t.GoalsAgainst.Away)),
		section(fmt.Sprintf("*Total Wins*: %d | *Total Draws*: %d | *Total Losses*: %d | *Total Goals Scored*: %d | *Total Goals Allowed*: %d",
			t.Wins.Total, t.Draws.Total, t.Losses.Total, t.GoalsFor.Total, t.GoalsAgainst.Total)),
		divider(),
	}
}

func pastGame(g records.PastGame) Sequence {
	// The winner's score is bolded
	homeGoals := fmt.Sprintf("%d", g.HomeGoals)
	awayGoals := fmt.Sprintf("%d", g.AwayGoals)
	if g.AwayWinner {
		awayGoals = "*" + awayGoals + "*"
	} else {
		homeGoals = "*" + homeGoals + "*"
	}

	return Sequence{
		section(fmt.Sprintf("*%s* at *%s*", g.AwayName, g.HomeName)),
		section(fmt.Sprintf("_Final Score_: %s - %s | %s - %s", g.AwayName, awayGoals, homeGoals, g.HomeName)),
		section(fmt.Sprintf("_Winner_: %s", g.Winner)),
		section(fmt.Sprintf("_Venue_: *%s*, %s @ %s UTC", g.VenueName, g.VenueCity, g.Kickoff)),
		divider(),
	}
}

func futureGame(g records.FutureGame) Sequence {
	return Sequence{
		section(fmt.Sprintf("*%s* at *%s*", g.AwayName, g.HomeName)),
		section(fmt.Sprintf("_Round_: *%s*", g.Round)),
		section(fmt.Sprintf("_Venue_: *%s*, %s @ %s UTC", g.VenueName, g.VenueCity, g.Kickoff)),
		section(fmt.Sprintf("_Predicted Winner_: *%s*", g.PredictedWinner)),
		divider(),
	}
}
