package database

import (
	"context"
	"time"

	"walegrills/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance. It stays nil when DATABASE_URL is unset.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection used for order receipts.
func InitDB(logger *zap.Logger) error {
	if config.AppConfig.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set; order receipts will not be recorded")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	MongoClient = client
	logger.Info("Connected to MongoDB successfully")
	return nil
}

// Database returns the application database, or nil when Mongo is not configured.
func Database() *mongo.Database {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Database(config.AppConfig.DatabaseName)
}
