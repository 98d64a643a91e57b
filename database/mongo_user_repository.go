package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pool-engine-go/models"
)

// MongoUserRepository provides access to operator accounts
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *MongoDB) *MongoUserRepository {
	return &MongoUserRepository{collection: db.GetCollection("users")}
}

// GetUserByEmail retrieves a user by email address
func (r *MongoUserRepository) GetUserByEmail(email string) (*models.User, error) {
	ctx, cancel := ContextWithTimeout(ShortTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by id
func (r *MongoUserRepository) GetUserByID(id int) (*models.User, error) {
	ctx, cancel := ContextWithTimeout(ShortTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new operator account
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", TranslateError(err))
	}
	return nil
}
