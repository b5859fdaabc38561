package admin

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionStore keeps sessions in a collection with a TTL index on
// updatedAt, so expiry happens in the database rather than in the gate.
type MongoSessionStore struct {
	coll *mongo.Collection
}

func NewMongoSessionStore(db *mongo.Database, collection string) *MongoSessionStore {
	return &MongoSessionStore{coll: db.Collection(collection)}
}

func (s *MongoSessionStore) Put(ctx context.Context, sess Session) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, sess, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoSessionStore) Get(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *MongoSessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
