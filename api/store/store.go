/* store.go
 * Contains the store struct and NewStore function. The favourite team methods live in favorites.go
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FavoritesCollection is where each user's favourite team is kept
const FavoritesCollection = "user_preferences"

// Collections groups the collections the store reads and writes
type Collections struct {
	Favorites *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections Collections
}

// NewStore initialises the db connection
// Preconditions: Receives a context bounding the connection attempt, the database name and the mongo URI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}
	if mongoURI == "" {
		return nil, fmt.Errorf("mongo uri cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return newStoreFromDatabase(client, client.Database(dbName)), nil
}

func newStoreFromDatabase(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Client:   client,
		Database: db,
		Collections: Collections{
			Favorites: db.Collection(FavoritesCollection),
		},
	}
}

// EnsureIndexes creates the unique user index on the favourites collection. Creating an existing index is a no-op
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Favorites.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userid", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("userid_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create favourites index: %w", err)
	}
	return nil
}
