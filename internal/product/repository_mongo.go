package product

import (
	"context"
	"errors"

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

func (r *MongoRepository) List(ctx context.Context) ([]Product, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *MongoRepository) ListHome(ctx context.Context) ([]Product, error) {
	return r.find(ctx, bson.M{"display_home": true},
		options.Find().SetSort(bson.D{{Key: "home_position", Value: 1}}))
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Product, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := make([]Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (Product, error) {
	var p Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *MongoRepository) Insert(ctx context.Context, p Product) (Product, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return Product{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, p Product) (Product, error) {
	p.ID = id
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		return Product{}, err
	}
	if res.MatchedCount == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (Product, error) {
	var p Product
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}
