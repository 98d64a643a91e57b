package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pool-engine-go/logging"
	"pool-engine-go/models"
)

// MongoResultRepository stores at most one result document per game
type MongoResultRepository struct {
	collection *mongo.Collection
}

// NewMongoResultRepository creates a new MongoDB result repository
func NewMongoResultRepository(db *MongoDB) *MongoResultRepository {
	collection := db.GetCollection("results")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "game_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		logging.Warnf("Could not create result index: %v", err)
	}

	return &MongoResultRepository{collection: collection}
}

// FindByGame retrieves the result for a game, nil when no result exists yet.
// A game without a result is a valid state (not yet played); callers decide
// whether that is an error.
func (r *MongoResultRepository) FindByGame(ctx context.Context, gameID int) (*models.Result, error) {
	var result models.Result
	err := r.collection.FindOne(ctx, bson.M{"game_id": gameID}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find result for game %d: %w", gameID, err)
	}
	return &result, nil
}

// Upsert creates or replaces the result for a game
func (r *MongoResultRepository) Upsert(ctx context.Context, result *models.Result) error {
	result.UpdatedAt = time.Now()
	filter := bson.M{"game_id": result.GameID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, result, opts); err != nil {
		return fmt.Errorf("failed to upsert result for game %d: %w", result.GameID, TranslateError(err))
	}
	return nil
}
