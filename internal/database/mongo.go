package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xavihachem/backonyxia/internal/config"
)

// Collection names used across the repositories.
const (
	OrdersCollection    = "orders"
	ProductsCollection  = "products"
	CitiesCollection    = "cities"
	LanguagesCollection = "languages"
	SessionsCollection  = "sessions"
)

// Connect opens a Mongo client, verifies connectivity and returns the
// application database handle.
func Connect(ctx context.Context, cfg config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}
	return client, client.Database(cfg.MongoDatabase), nil
}

// EnsureIndexes creates the indexes the application relies on:
// unique orderId, unique city name, and a TTL index that lets the store
// expire admin sessions on its own.
func EnsureIndexes(ctx context.Context, db *mongo.Database, sessionTTL time.Duration) error {
	_, err := db.Collection(OrdersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "orderDate", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CitiesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(LanguagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(SessionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updatedAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(sessionTTL.Seconds())),
	})
	return err
}
