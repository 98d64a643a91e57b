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

// MongoGameRepository provides read access to the games collection.
// Games are owned by the scheduling subsystem; Upsert exists for seeding
// and imports only.
type MongoGameRepository struct {
	collection *mongo.Collection
}

// NewMongoGameRepository creates a new MongoDB game repository
func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection("games")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create game indexes: %v", err)
	}

	return &MongoGameRepository{collection: collection}
}

// FindByID retrieves a game by its id, nil when absent
func (r *MongoGameRepository) FindByID(ctx context.Context, id int) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&game)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find game %d: %w", id, err)
	}
	return &game, nil
}

// FindBySeason retrieves all games for a season
func (r *MongoGameRepository) FindBySeason(ctx context.Context, season int) ([]*models.Game, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "week", Value: 1},
		{Key: "kickoff", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find games by season: %w", err)
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}
	return games, nil
}

// FindByWeek retrieves all games for a season and week
func (r *MongoGameRepository) FindByWeek(ctx context.Context, season, week int) ([]*models.Game, error) {
	filter := bson.M{"season": season, "week": week}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "kickoff", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find games by week: %w", err)
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}
	return games, nil
}

// Upsert creates or replaces a game by id
func (r *MongoGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	filter := bson.M{"id": game.ID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, game, opts); err != nil {
		return fmt.Errorf("failed to upsert game %d: %w", game.ID, TranslateError(err))
	}
	return nil
}
