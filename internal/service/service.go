// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"

	producterrors "github.com/abgdnv/product-api/internal/errors"
	"github.com/abgdnv/product-api/internal/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create persists a new product and returns it with its assigned ID.
	Create(ctx context.Context, product store.Product) (*store.Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns a *errors.NotFoundError if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*store.Product, error)

	// FindAll returns all products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]store.Product, error)

	// Update overwrites every mutable field of an existing product.
	// Returns a *errors.NotFoundError if no product exists with the given ID.
	Update(ctx context.Context, id int64, values store.Product) (*store.Product, error)

	// DeleteByID removes a product by its ID.
	// Returns a *errors.NotFoundError if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	operations metric.Int64Counter
}

// NewService creates a new instance of ProductService with the provided repository.
// Operations are counted on meter; a nil meter disables counting.
func NewService(repo store.ProductStore, meter metric.Meter) *Service {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("")
	}
	operations, err := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		operations, _ = noop.NewMeterProvider().Meter("").Int64Counter("products.operations")
	}
	return &Service{
		repository: repo,
		operations: operations,
	}
}

// Create stores a new product. Any ID set by the caller is ignored.
func (s *Service) Create(ctx context.Context, product store.Product) (_ *store.Product, err error) {
	defer s.record(ctx, "create", &err)

	product.ID = 0
	created, err := s.repository.Save(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// FindByID retrieves a product by its ID.
func (s *Service) FindByID(ctx context.Context, id int64) (_ *store.Product, err error) {
	defer s.record(ctx, "find", &err)
	return s.findByID(ctx, id)
}

// FindAll retrieves every product ordered by ID.
func (s *Service) FindAll(ctx context.Context) (_ []store.Product, err error) {
	defer s.record(ctx, "list", &err)

	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if products == nil {
		products = []store.Product{}
	}
	return products, nil
}

// Update overwrites name, description, price and quantity of an existing product and saves it.
func (s *Service) Update(ctx context.Context, id int64, values store.Product) (_ *store.Product, err error) {
	defer s.record(ctx, "update", &err)

	existing, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = values.Name
	existing.Description = values.Description
	existing.Price = values.Price
	existing.QuantityOfStock = values.QuantityOfStock

	updated, err := s.repository.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return updated, nil
}

// DeleteByID deletes a product by its ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) (err error) {
	defer s.record(ctx, "delete", &err)

	existing, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, existing); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return nil
}

func (s *Service) findByID(ctx context.Context, id int64) (*store.Product, error) {
	product, found, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if !found {
		return nil, producterrors.NewNotFound(id)
	}
	return product, nil
}

func (s *Service) record(ctx context.Context, operation string, err *error) {
	outcome := "success"
	switch {
	case *err == nil:
	case errors.Is(*err, producterrors.ErrProductNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	s.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
