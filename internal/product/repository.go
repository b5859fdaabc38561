package product

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines persistence operations for catalog entries.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	// ListHome returns display_home entries sorted by home_position.
	ListHome(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (Product, error)
	Insert(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id primitive.ObjectID, p Product) (Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (Product, error)
}
