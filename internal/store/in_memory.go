package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// InMemory implements ProductStore using an in-memory map.
type InMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of InMemory.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// Save inserts or updates a product.
func (s *InMemory) Save(_ context.Context, product *Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := product.clone()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	} else if _, exists := s.products[p.ID]; !exists {
		return nil, ErrConcurrentDelete
	}
	s.products[p.ID] = p

	saved := p.clone()
	return &saved, nil
}

// FindByID retrieves a product by its ID.
func (s *InMemory) FindByID(_ context.Context, id int64) (*Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, false, nil
	}
	found := p.clone()
	return &found, true, nil
}

// FindAll retrieves all products.
func (s *InMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p.clone())
	}
	slices.SortFunc(list, func(a, b Product) int { return cmp.Compare(a.ID, b.ID) })
	return list, nil
}

// Delete deletes a product by its ID.
func (s *InMemory) Delete(_ context.Context, product *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, product.ID)
	return nil
}

// Count returns the number of stored products.
func (s *InMemory) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}
