// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"errors"
)

// ErrConcurrentDelete is returned by Save when the product being updated no longer exists.
var ErrConcurrentDelete = errors.New("product was deleted concurrently")

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// Save inserts the product when its ID is zero and assigns a new ID,
	// otherwise it overwrites every mutable field of the existing row.
	// Returns ErrConcurrentDelete if the row to update is gone.
	Save(ctx context.Context, product *Product) (*Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// The boolean result is false if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, bool, error)

	// FindAll returns all products ordered by ID.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Delete removes the product. Deleting a product that is already gone is a no-op.
	Delete(ctx context.Context, product *Product) error

	// Count returns the number of stored products.
	Count(ctx context.Context) (int64, error)
}
