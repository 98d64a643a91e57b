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

// MongoPickRepository provides access to the picks collection
type MongoPickRepository struct {
	collection *mongo.Collection
}

// NewMongoPickRepository creates a new MongoDB pick repository
func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection("picks")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "game_id", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "entry_id", Value: 1},
				{Key: "season", Value: 1},
			},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create pick indexes: %v", err)
	}

	return &MongoPickRepository{collection: collection}
}

// FindByID retrieves a pick by its id, nil when absent
func (r *MongoPickRepository) FindByID(ctx context.Context, id int) (*models.Pick, error) {
	var pick models.Pick
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&pick)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pick %d: %w", id, err)
	}
	return &pick, nil
}

// FindByGame retrieves all picks on a game
func (r *MongoPickRepository) FindByGame(ctx context.Context, gameID int) ([]*models.Pick, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"game_id": gameID}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by game: %w", err)
	}
	defer cursor.Close(ctx)

	var picks []*models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}
	return picks, nil
}

// FindByEntrySeason retrieves all picks made by an entry in a season,
// sorted ascending by week then game for stable iteration
func (r *MongoPickRepository) FindByEntrySeason(ctx context.Context, entryID, season int) ([]*models.Pick, error) {
	filter := bson.M{"entry_id": entryID, "season": season}
	opts := options.Find().SetSort(bson.D{
		{Key: "week", Value: 1},
		{Key: "game_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by entry and season: %w", err)
	}
	defer cursor.Close(ctx)

	var picks []*models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}
	return picks, nil
}

// Create inserts a new pick
func (r *MongoPickRepository) Create(ctx context.Context, pick *models.Pick) error {
	now := time.Now()
	pick.CreatedAt = now
	pick.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, pick); err != nil {
		return fmt.Errorf("failed to create pick: %w", TranslateError(err))
	}
	return nil
}
