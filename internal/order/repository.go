package order

import "context"

// Repository defines persistence operations for orders. Implementations
// translate store-level failures into the package sentinel errors.
type Repository interface {
	// Insert writes the order as a single record. A colliding orderId
	// returns ErrDuplicateOrderID.
	Insert(ctx context.Context, ord Order) (Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]Order, error)

	// GetByOrderID looks an order up by its public orderId, not the
	// store's own document id.
	GetByOrderID(ctx context.Context, orderID string) (Order, error)

	// UpdateStatus sets status and updatedAt and returns the updated
	// order, or ErrNotFound.
	UpdateStatus(ctx context.Context, orderID, status string) (Order, error)

	// Delete removes the order and returns the removed record, or
	// ErrNotFound.
	Delete(ctx context.Context, orderID string) (Order, error)
}
