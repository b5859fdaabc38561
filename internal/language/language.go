package language

import "go.mongodb.org/mongo-driver/bson/primitive"

// Entry is one translation row keyed by a stable identifier.
type Entry struct {
	ID  primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Key string             `bson:"key" json:"key"`
	En  string             `bson:"en" json:"en"`
	Ar  string             `bson:"ar" json:"ar"`
}
