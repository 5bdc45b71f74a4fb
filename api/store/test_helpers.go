/* test_helpers.go
 * Contains test helper functions for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"sportsstats-bot/api/shared"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function that drops the database.
func CreateTestStore(ctx context.Context, mongoURI string) (*Store, func(), error) {
	store, err := NewStore(ctx, "test_sportsstats", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			store.Database.Drop(context.TODO())
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateSampleFavorite creates sample FavoriteTeam data for testing.
func CreateSampleFavorite(userID string) shared.FavoriteTeam {
	return shared.FavoriteTeam{
		UserID:   userID,
		TeamName: "Arsenal",
		TeamID:   42,
	}
}
