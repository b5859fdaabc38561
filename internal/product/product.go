package product

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock status values. The storefront renders these strings directly, so
// they are stored exactly as the original dataset has them.
const (
	StockAvailable   = "متاح"
	StockUnavailable = "غير متاح"
)

var ErrNotFound = errors.New("product not found")

// ValidationError carries per-field messages for a rejected product write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "product validation failed"
}

// Stock tracks availability of a product. Status is derived from Quantity
// on every write; the two must never disagree.
type Stock struct {
	Quantity int    `bson:"quantity" json:"quantity"`
	Status   string `bson:"status" json:"status"`
}

// StatusForQuantity derives the stock status from a quantity.
func StatusForQuantity(q int) string {
	if q > 0 {
		return StockAvailable
	}
	return StockUnavailable
}

// Product is a catalog entry.
type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name             string             `bson:"name" json:"name"`
	SmallDescription string             `bson:"smallDescription" json:"smallDescription"`
	Description      string             `bson:"description" json:"description"`
	Price            float64            `bson:"price" json:"price"`
	Image            string             `bson:"image" json:"image"`
	AdditionalImages []string           `bson:"additionalImages" json:"additionalImages"`
	Stock            Stock              `bson:"stock" json:"stock"`
	DisplayHome      bool               `bson:"display_home" json:"display_home"`
	HomePosition     int                `bson:"home_position" json:"home_position"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}
