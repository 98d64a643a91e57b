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

// MongoPoolRepository provides access to the pools collection
type MongoPoolRepository struct {
	collection *mongo.Collection
}

// NewMongoPoolRepository creates a new MongoDB pool repository
func NewMongoPoolRepository(db *MongoDB) *MongoPoolRepository {
	collection := db.GetCollection("pools")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		logging.Warnf("Could not create pool index: %v", err)
	}

	return &MongoPoolRepository{collection: collection}
}

// FindByID retrieves a pool by its id, nil when absent
func (r *MongoPoolRepository) FindByID(ctx context.Context, id int) (*models.Pool, error) {
	var pool models.Pool
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&pool)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pool %d: %w", id, err)
	}
	return &pool, nil
}

// FindBySeason retrieves all pools for a season
func (r *MongoPoolRepository) FindBySeason(ctx context.Context, season int) ([]*models.Pool, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"season": season})
	if err != nil {
		return nil, fmt.Errorf("failed to find pools by season: %w", err)
	}
	defer cursor.Close(ctx)

	var pools []*models.Pool
	if err := cursor.All(ctx, &pools); err != nil {
		return nil, fmt.Errorf("failed to decode pools: %w", err)
	}
	return pools, nil
}

// Create inserts a new pool
func (r *MongoPoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	if !pool.Type.Valid() {
		return fmt.Errorf("pool type %q is not a known pool type", pool.Type)
	}
	pool.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, pool); err != nil {
		return fmt.Errorf("failed to create pool: %w", TranslateError(err))
	}
	return nil
}
