/* favorites.go
 * Contains the methods for interacting with the user_preferences collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"sportsstats-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetFavoriteTeam stores a user's favourite team, replacing any team already set
// Preconditions: Receives a FavoriteTeam with a non-empty user ID
// Postconditions: The user's favourite is created or updated, or an error is returned if the operation was unsuccessful
func (s *Store) SetFavoriteTeam(ctx context.Context, favorite shared.FavoriteTeam) error {
	if favorite.UserID == "" {
		return fmt.Errorf("user id cannot be empty")
	}

	filter := bson.M{"userid": favorite.UserID}
	update := bson.M{
		"$set": bson.M{
			"team_name": favorite.TeamName,
			"team_id":   favorite.TeamID,
		},
	}
	_, err := s.Collections.Favorites.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store favourite team: %w", err)
	}
	return nil
}

// GetFavoriteTeam does DB lookup and gets the favourite team for a user
// Preconditions: Receives the user's ID
// Postconditions: Returns the user's favourite team, mongo.ErrNoDocuments if none is set, or an error if it occurs
func (s *Store) GetFavoriteTeam(ctx context.Context, userID string) (shared.FavoriteTeam, error) {
	var result shared.FavoriteTeam
	err := s.Collections.Favorites.FindOne(ctx, bson.M{"userid": userID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.FavoriteTeam{}, err
		}
		return shared.FavoriteTeam{}, fmt.Errorf("error fetching favourite team from db: %w", err)
	}
	return result, nil
}

// DeleteFavoriteTeam removes a user's favourite team
// Preconditions: Receives the user's ID
// Postconditions: Returns true if a favourite was removed, false if none was set, or an error if it occurs
func (s *Store) DeleteFavoriteTeam(ctx context.Context, userID string) (bool, error) {
	result, err := s.Collections.Favorites.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete favourite team: %w", err)
	}
	return result.DeletedCount > 0, nil
}
