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

// MongoGradeRepository stores at most one grade document per pick.
// Upsert replaces the document wholesale; a single-document replace is atomic,
// so a re-grade can never interleave with an override on the same pick.
type MongoGradeRepository struct {
	collection *mongo.Collection
}

// NewMongoGradeRepository creates a new MongoDB grade repository
func NewMongoGradeRepository(db *MongoDB) *MongoGradeRepository {
	collection := db.GetCollection("grades")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "pick_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		logging.Warnf("Could not create grade index: %v", err)
	}

	return &MongoGradeRepository{collection: collection}
}

// FindByPick retrieves the grade for a pick, nil when the pick is ungraded
func (r *MongoGradeRepository) FindByPick(ctx context.Context, pickID int) (*models.Grade, error) {
	var grade models.Grade
	err := r.collection.FindOne(ctx, bson.M{"pick_id": pickID}).Decode(&grade)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find grade for pick %d: %w", pickID, err)
	}
	return &grade, nil
}

// FindByPicks retrieves grades for a set of picks. Ungraded picks are simply
// absent from the result.
func (r *MongoGradeRepository) FindByPicks(ctx context.Context, pickIDs []int) ([]*models.Grade, error) {
	if len(pickIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"pick_id": bson.M{"$in": pickIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find grades by picks: %w", err)
	}
	defer cursor.Close(ctx)

	var grades []*models.Grade
	if err := cursor.All(ctx, &grades); err != nil {
		return nil, fmt.Errorf("failed to decode grades: %w", err)
	}
	return grades, nil
}

// Upsert creates or fully replaces the grade for a pick
func (r *MongoGradeRepository) Upsert(ctx context.Context, grade *models.Grade) error {
	grade.UpdatedAt = time.Now()
	filter := bson.M{"pick_id": grade.PickID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, grade, opts); err != nil {
		return fmt.Errorf("failed to upsert grade for pick %d: %w", grade.PickID, TranslateError(err))
	}
	return nil
}
