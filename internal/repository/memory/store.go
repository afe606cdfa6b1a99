// Package memory provides in-memory implementations of the repository ports.
// They back the service and handler tests and the memory storage mode; the
// behavior mirrors the Postgres repositories, including conditional stock
// updates and uniqueness conflicts.
package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/port"
)

// Store holds all aggregates behind one mutex so that cross-aggregate
// operations like PlaceOrder stay atomic.
type Store struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]domain.Customer
	products  map[uuid.UUID]domain.Product
	carts     map[uuid.UUID]map[uuid.UUID]domain.CartItem
	orders    map[uuid.UUID]domain.Order
}

func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]domain.Customer),
		products:  make(map[uuid.UUID]domain.Product),
		carts:     make(map[uuid.UUID]map[uuid.UUID]domain.CartItem),
		orders:    make(map[uuid.UUID]domain.Order),
	}
}

func (s *Store) Customers() port.CustomerRepository {
	return &customerRepository{store: s}
}

func (s *Store) Products() port.ProductRepository {
	return &productRepository{store: s}
}

func (s *Store) Carts() port.CartRepository {
	return &cartRepository{store: s}
}

func (s *Store) Orders() port.OrderRepository {
	return &orderRepository{store: s}
}
