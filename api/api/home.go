/* home.go
 * Contains the home view: a welcome header, the top of the league table and the next games for the user's
 * favourite team (or the whole league when none is set). It is returned as fragments rather than sent
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"

	"sportsstats-bot/api/cards"
	"sportsstats-bot/api/external"
	"sportsstats-bot/api/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// homeTimeLayout is how the home view shows when it was built
const homeTimeLayout = "2006-01-02 15:04 UTC"

// Home builds the home view for a user
// Preconditions: Receives the user's ID
// Postconditions: Returns the view's fragments. A failed section is replaced by its empty text. If both sections
// fail an empty sequence is returned along with the combined error
func (a *API) Home(ctx context.Context, userID string) (cards.Sequence, error) {
	favorite, hasFavorite := a.homeFavorite(ctx, userID)

	standings, standingsErr := a.standingsCard(ctx, HomeStandingsLimit)
	if standingsErr != nil {
		standings = card{header: fmt.Sprintf("Current %s Top %d", a.LeagueName, HomeStandingsLimit), empty: noStandingsMessage}
	}

	upcoming, upcomingErr := a.homeUpcoming(ctx, favorite, hasFavorite)
	if upcomingErr != nil {
		upcoming = card{header: fmt.Sprintf("Upcoming %s Games", a.LeagueName), empty: upcomingGamesEmpty(favorite.TeamName)}
	}

	if standingsErr != nil && upcomingErr != nil {
		err := errors.Join(
			fmt.Errorf("standings: %w", standingsErr),
			fmt.Errorf("upcoming games: %w", upcomingErr),
		)
		a.Logger.Error("home view unavailable", zap.String("user_id", userID), zap.Error(err))
		return cards.Sequence{}, err
	}
	if standingsErr != nil {
		a.Logger.Warn("home view standings unavailable", zap.String("user_id", userID), zap.Error(standingsErr))
	}
	if upcomingErr != nil {
		a.Logger.Warn("home view upcoming games unavailable", zap.String("user_id", userID), zap.Error(upcomingErr))
	}

	view := cards.Sequence{{Type: cards.HeaderFragment, Text: HomeTitle}}
	view = append(view, cards.Context(homeContext(a.Now().UTC().Format(homeTimeLayout), favorite.TeamName))...)
	view = append(view, cards.Fragment{Type: cards.DividerFragment})
	view = append(view, a.build(ctx, standings)...)
	view = append(view, a.build(ctx, upcoming)...)
	return view, nil
}

// homeFavorite returns the user's favourite team. false means none is set or the store cannot be read
func (a *API) homeFavorite(ctx context.Context, userID string) (shared.FavoriteTeam, bool) {
	if a.Store == nil || userID == "" {
		return shared.FavoriteTeam{}, false
	}
	favorite, err := a.Store.GetFavoriteTeam(ctx, userID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			a.Logger.Warn("failed to read favourite team for home view", zap.String("user_id", userID), zap.Error(err))
		}
		return shared.FavoriteTeam{}, false
	}
	return favorite, favorite.TeamName != ""
}

// homeUpcoming builds the upcoming games section for the favourite team, or the whole league
func (a *API) homeUpcoming(ctx context.Context, favorite shared.FavoriteTeam, hasFavorite bool) (card, error) {
	if !hasFavorite {
		return a.upcomingGamesCard(ctx, nil)
	}
	// Favourites stored with their provider id skip the name lookup
	team := external.Team{ID: favorite.TeamID, Name: favorite.TeamName}
	if team.ID <= 0 {
		resolved, err := a.resolve(ctx, favorite.TeamName)
		if err != nil {
			return card{}, err
		}
		team = resolved
	}
	return a.upcomingGamesCard(ctx, &team)
}
