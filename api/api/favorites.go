/* favorites.go
 * Contains the favourite team commands
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"

	"sportsstats-bot/api/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SetFavoriteTeam validates a team name against the provider and stores it as the user's favourite
// Preconditions: Receives the user's ID and the team name typed by the user
// Postconditions: Returns the stored favourite, an error wrapping ErrUnknownTeam if the name did not resolve, or a
// storage/provider error
func (a *API) SetFavoriteTeam(ctx context.Context, userID string, name string) (shared.FavoriteTeam, error) {
	team, err := a.resolve(ctx, name)
	if err != nil {
		a.Logger.Info("favourite team rejected", zap.String("user_id", userID), zap.String("input", name), zap.Error(err))
		return shared.FavoriteTeam{}, err
	}

	favorite := shared.FavoriteTeam{UserID: userID, TeamName: team.Name, TeamID: team.ID}
	if err := a.Store.SetFavoriteTeam(ctx, favorite); err != nil {
		a.Logger.Error("failed to store favourite team", zap.String("user_id", userID), zap.Error(err))
		return shared.FavoriteTeam{}, fmt.Errorf("failed to store favourite team: %w", err)
	}
	return favorite, nil
}

// GetFavoriteTeam returns the user's favourite team
// Preconditions: Receives the user's ID
// Postconditions: Returns the favourite and true, false if none is set, or an error if the store failed
func (a *API) GetFavoriteTeam(ctx context.Context, userID string) (shared.FavoriteTeam, bool, error) {
	favorite, err := a.Store.GetFavoriteTeam(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.FavoriteTeam{}, false, nil
		}
		a.Logger.Error("failed to read favourite team", zap.String("user_id", userID), zap.Error(err))
		return shared.FavoriteTeam{}, false, err
	}
	return favorite, true, nil
}

// DeleteFavoriteTeam removes the user's favourite team
// Preconditions: Receives the user's ID
// Postconditions: Returns true if a favourite was removed, false if none was set, or an error if the store failed
func (a *API) DeleteFavoriteTeam(ctx context.Context, userID string) (bool, error) {
	deleted, err := a.Store.DeleteFavoriteTeam(ctx, userID)
	if err != nil {
		a.Logger.Error("failed to delete favourite team", zap.String("user_id", userID), zap.Error(err))
		return false, err
	}
	return deleted, nil
}
