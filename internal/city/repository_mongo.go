package city

import (
	"context"

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

func (r *MongoRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.EstimatedDocumentCount(ctx)
	return int(n), err
}

func (r *MongoRepository) InsertMany(ctx context.Context, cities []City) error {
	docs := make([]interface{}, 0, len(cities))
	for _, c := range cities {
		docs = append(docs, c)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func (r *MongoRepository) ListByName(ctx context.Context) ([]City, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cities := make([]City, 0)
	if err := cur.All(ctx, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *MongoRepository) UpdateFees(ctx context.Context, updates []FeeUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(updates))
	for _, u := range updates {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			continue
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": oid}).
			SetUpdate(bson.M{"$set": bson.M{"desktopFee": u.DesktopFee, "houseFee": u.HouseFee}}))
	}
	if len(models) == 0 {
		return nil
	}
	_, err := r.coll.BulkWrite(ctx, models)
	return err
}
