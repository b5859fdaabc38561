package order

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collection)}
}

func (r *MongoRepository) Insert(ctx context.Context, ord Order) (Order, error) {
	res, err := r.coll.InsertOne(ctx, ord)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Order{}, ErrDuplicateOrderID
		}
		return Order{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ord.ID = oid
	}
	return ord, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Order, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := make([]Order, 0)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoRepository) GetByOrderID(ctx context.Context, orderID string) (Order, error) {
	var ord Order
	err := r.coll.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&ord)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, orderID, status string) (Order, error) {
	var ord Order
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ord)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *MongoRepository) Delete(ctx context.Context, orderID string) (Order, error) {
	var ord Order
	err := r.coll.FindOneAndDelete(ctx, bson.M{"orderId": orderID}).Decode(&ord)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}
