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

// MongoEntryRepository provides access to the entries collection
type MongoEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoEntryRepository creates a new MongoDB entry repository
func NewMongoEntryRepository(db *MongoDB) *MongoEntryRepository {
	collection := db.GetCollection("entries")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "pool_id", Value: 1},
				{Key: "season", Value: 1},
			},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create entry indexes: %v", err)
	}

	return &MongoEntryRepository{collection: collection}
}

// FindByID retrieves an entry by its id, nil when absent
func (r *MongoEntryRepository) FindByID(ctx context.Context, id int) (*models.Entry, error) {
	var entry models.Entry
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find entry %d: %w", id, err)
	}
	return &entry, nil
}

// FindByPoolSeason retrieves all entries in a pool for a season, sorted by id
// so callers iterate a stable order
func (r *MongoEntryRepository) FindByPoolSeason(ctx context.Context, poolID, season int) ([]*models.Entry, error) {
	filter := bson.M{"pool_id": poolID, "season": season}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find entries by pool and season: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return entries, nil
}

// Create inserts a new entry
func (r *MongoEntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	entry.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create entry: %w", TranslateError(err))
	}
	return nil
}
