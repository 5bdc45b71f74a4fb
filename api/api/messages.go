/* messages.go
 * Contains the plain text replies the bot sends outside of cards
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"fmt"

	"sportsstats-bot/api/shared"
)

const (
	// ErrorFallback is the notification text of every error message
	ErrorFallback = "Error Getting Data from API"
	// UnknownTeamMessage is sent when a command that needs a team name was given none
	UnknownTeamMessage = "Please ensure you have provided a valid EPL team name."
	// HomeTitle opens the home view
	HomeTitle = "👋 Welcome to the Home of SportsStatsBot! ⚽"

	noStandingsMessage = "No standings data available."
)

// SetFavoriteReply is the reply to faveset
func SetFavoriteReply(favorite shared.FavoriteTeam, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("Your favorite team has been set to %s", favorite.TeamName)
	case errors.Is(err, shared.ErrUnknownTeam):
		return "Unable to set favorite team. Please ensure you have provided a valid EPL team name."
	default:
		return "Unable to set favorite team. Please try again later."
	}
}

// GetFavoriteReply is the reply to faveget
func GetFavoriteReply(favorite shared.FavoriteTeam, found bool, err error, setCommand string) string {
	switch {
	case err != nil:
		return "Unable to get favorite team. Please try again later."
	case !found:
		return fmt.Sprintf("You currently do not have a favorite team set. Use *%s* to set it.", setCommand)
	default:
		return fmt.Sprintf("Your favorite team is currently set to %s. Use *%s* to change it.", favorite.TeamName, setCommand)
	}
}

// DeleteFavoriteReply is the reply to favedel
func DeleteFavoriteReply(deleted bool, err error, setCommand string) string {
	switch {
	case err != nil:
		return "Unable to remove favorite team. Please try again later."
	case !deleted:
		return fmt.Sprintf("You currently do not have a favorite team set. Use *%s* to set it.", setCommand)
	default:
		return "Your favorite team has been removed."
	}
}

// pastGamesEmpty is shown in place of game cards when a team has no finished games
func pastGamesEmpty(team string) string {
	if team == "" {
		return "No past games found in the current season."
	}
	return fmt.Sprintf("No past games found for %s in the current season.", team)
}

// upcomingGamesEmpty is shown in place of game cards when there are no scheduled games
func upcomingGamesEmpty(team string) string {
	if team == "" {
		return "No upcoming games found in the current season."
	}
	return fmt.Sprintf("No upcoming games found for %s in the current season.", team)
}

// homeContext is the line under the home view title
func homeContext(updated string, favorite string) string {
	if favorite == "" {
		return fmt.Sprintf("Last Updated: %s | Favorite Team: *None Set*. Displaying future games featuring any team.", updated)
	}
	return fmt.Sprintf("Last Updated: %s | Favorite Team: *%s*. Displaying future games for this team.", updated, favorite)
}
