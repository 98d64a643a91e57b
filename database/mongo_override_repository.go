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

// MongoOverrideRepository is the append-only ledger of manual grade
// corrections. There is deliberately no update or delete method: once
// written, an override row is history.
type MongoOverrideRepository struct {
	collection *mongo.Collection
}

// NewMongoOverrideRepository creates a new MongoDB override repository
func NewMongoOverrideRepository(db *MongoDB) *MongoOverrideRepository {
	collection := db.GetCollection("grade_overrides")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "pick_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
			},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create override indexes: %v", err)
	}

	return &MongoOverrideRepository{collection: collection}
}

// Insert appends one override record
func (r *MongoOverrideRepository) Insert(ctx context.Context, override *models.GradeOverride) error {
	if override.CreatedAt.IsZero() {
		override.CreatedAt = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, override); err != nil {
		return fmt.Errorf("failed to insert override for pick %d: %w", override.PickID, TranslateError(err))
	}
	return nil
}

// FindByPick retrieves the full override history for a pick in
// chronological order
func (r *MongoOverrideRepository) FindByPick(ctx context.Context, pickID int) ([]*models.GradeOverride, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"pick_id": pickID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find overrides for pick %d: %w", pickID, err)
	}
	defer cursor.Close(ctx)

	var overrides []*models.GradeOverride
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode overrides: %w", err)
	}
	return overrides, nil
}

// Stats aggregates override counts for a season, optionally narrowed to one
// week: total rows, distinct games touched, and counts per new outcome.
func (r *MongoOverrideRepository) Stats(ctx context.Context, season int, week *int) (*models.OverrideStats, error) {
	match := bson.D{{Key: "season", Value: season}}
	if week != nil {
		match = append(match, bson.E{Key: "week", Value: *week})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$new_outcome"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "games", Value: bson.D{{Key: "$addToSet", Value: "$game_id"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate override stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &models.OverrideStats{
		OverridesByOutcome: make(map[models.Outcome]int),
	}
	distinctGames := make(map[int]struct{})

	for cursor.Next(ctx) {
		var row struct {
			Outcome models.Outcome `bson:"_id"`
			Count   int            `bson:"count"`
			Games   []int          `bson:"games"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode override stats: %w", err)
		}
		stats.TotalOverrides += row.Count
		stats.OverridesByOutcome[row.Outcome] = row.Count
		for _, gameID := range row.Games {
			distinctGames[gameID] = struct{}{}
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("override stats cursor failed: %w", err)
	}

	stats.GamesWithOverrides = len(distinctGames)
	return stats, nil
}
