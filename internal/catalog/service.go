package catalog

import (
	"context"
	"fmt"

	"github.com/mlevkov/prodsync/internal/product"
)

// ProductService defines the catalog operations exposed over REST.
type ProductService interface {
	// FindAll returns all products in insertion order.
	FindAll(ctx context.Context) ([]product.Product, error)

	// Create adds a new product.
	// Returns ErrSKUExists if the SKU is already taken.
	Create(ctx context.Context, p product.Product) (*product.Product, error)

	// Update replaces an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given SKU.
	Update(ctx context.Context, p product.Product) (*product.Product, error)

	// DeleteBySKU removes a product by its SKU.
	// Returns ErrProductNotFound if no product exists with the given SKU.
	DeleteBySKU(ctx context.Context, sku string) error
}

// Service implements ProductService on top of a Store.
type Service struct {
	store Store
}

// NewService creates a Service backed by the provided store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) FindAll(ctx context.Context) ([]product.Product, error) {
	list, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, p product.Product) (*product.Product, error) {
	created, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product %s: %w", p.SKU, err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, p product.Product) (*product.Product, error) {
	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", p.SKU, err)
	}
	return updated, nil
}

func (s *Service) DeleteBySKU(ctx context.Context, sku string) error {
	if err := s.store.DeleteBySKU(ctx, sku); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", sku, err)
	}
	return nil
}
