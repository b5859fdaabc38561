package city

import "context"

// Repository defines persistence operations for the fee table.
type Repository interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, cities []City) error
	ListByName(ctx context.Context) ([]City, error)
	// UpdateFees applies the updates in one bulk write; unknown ids are
	// skipped silently.
	UpdateFees(ctx context.Context, updates []FeeUpdate) error
}
