package database

import (
	"context"
	"fmt"
	"time"

	"pool-engine-go/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewMongoConnection(config Config) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var uri string
	if config.Username != "" && config.Password != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			config.Username, config.Password, config.Host, config.Port, config.Database, config.Database)
		logger.Infof("Connecting with authentication as user: %s", config.Username)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%s/%s", config.Host, config.Port, config.Database)
		logger.Info("Connecting without authentication")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Errorf("Failed to connect: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("Failed to ping: %v", err)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Infof("Connected to %s:%s database=%s", config.Host, config.Port, config.Database)

	return &MongoDB{
		client:   client,
		database: client.Database(config.Database),
	}, nil
}

func (m *MongoDB) Close() error {
	logger := logging.WithPrefix("MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.client.Disconnect(ctx)
	if err != nil {
		logger.Errorf("Error disconnecting: %v", err)
	} else {
		logger.Info("Connection closed")
	}
	return err
}

func (m *MongoDB) TestConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// WithTransaction runs fn inside a single multi-document transaction.
// Writers use it to keep audit rows and live grade rows consistent; readers
// use it to fold standings from one snapshot instead of a torn mix of
// pre- and post-override rows. Any error from fn aborts the transaction.
func (m *MongoDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
