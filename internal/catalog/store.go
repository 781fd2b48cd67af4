package catalog

import (
	"context"
	"sync"

	"github.com/mlevkov/prodsync/internal/product"
)

// Store is the persistence surface of the catalog service. It abstracts
// the underlying data store so the service layer does not depend on a
// concrete implementation.
type Store interface {
	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]product.Product, error)

	// FindBySKU retrieves a single product by its SKU.
	// Returns ErrProductNotFound if no product exists with the given SKU.
	FindBySKU(ctx context.Context, sku string) (*product.Product, error)

	// Create adds a new product.
	// Returns ErrSKUExists if the SKU is already present.
	Create(ctx context.Context, p product.Product) (*product.Product, error)

	// Update replaces the product with the same SKU, keeping its position.
	// Returns ErrProductNotFound if no product exists with the given SKU.
	Update(ctx context.Context, p product.Product) (*product.Product, error)

	// DeleteBySKU removes a product by its SKU.
	// Returns ErrProductNotFound if no product exists with the given SKU.
	DeleteBySKU(ctx context.Context, sku string) error
}

// inMemory implements Store with a slice for ordering and a SKU index.
type inMemory struct {
	mu       sync.RWMutex
	products []product.Product
	index    map[string]int
}

// NewInMemoryStore creates an empty Store.
func NewInMemoryStore() Store {
	return &inMemory{index: make(map[string]int)}
}

// NewSeededStore creates a Store preloaded with the given products.
// Duplicate SKUs keep the first occurrence.
func NewSeededStore(seed []product.Product) Store {
	s := &inMemory{index: make(map[string]int, len(seed))}
	for _, p := range seed {
		if _, exists := s.index[p.SKU]; exists {
			continue
		}
		s.index[p.SKU] = len(s.products)
		s.products = append(s.products, p)
	}
	return s
}

func (s *inMemory) FindAll(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]product.Product, len(s.products))
	copy(list, s.products)
	return list, nil
}

func (s *inMemory) FindBySKU(_ context.Context, sku string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[sku]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

func (s *inMemory) Create(_ context.Context, p product.Product) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[p.SKU]; exists {
		return nil, ErrSKUExists
	}
	s.index[p.SKU] = len(s.products)
	s.products = append(s.products, p)
	return &p, nil
}

func (s *inMemory) Update(_ context.Context, p product.Product) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[p.SKU]
	if !ok {
		return nil, ErrProductNotFound
	}
	s.products[i] = p
	return &p, nil
}

func (s *inMemory) DeleteBySKU(_ context.Context, sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[sku]
	if !ok {
		return ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	delete(s.index, sku)
	for j := i; j < len(s.products); j++ {
		s.index[s.products[j].SKU] = j
	}
	return nil
}
