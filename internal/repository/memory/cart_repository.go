package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
)

type cartRepository struct {
	store *Store
}

func (r *cartRepository) GetCart(_ context.Context, customerID uuid.UUID) (domain.Cart, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return domain.Cart{
		CustomerID: customerID,
		Items:      sortedCartItems(r.store.carts[customerID]),
	}, nil
}

func (r *cartRepository) AddItem(_ context.Context, customerID uuid.UUID, item domain.CartItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items, ok := r.store.carts[customerID]
	if !ok {
		items = make(map[uuid.UUID]domain.CartItem)
		r.store.carts[customerID] = items
	}

	if existing, ok := items[item.ProductID]; ok {
		existing.Quantity += item.Quantity
		items[item.ProductID] = existing
		return nil
	}

	item.CreatedAt = time.Now().UTC()
	items[item.ProductID] = item

	return nil
}

func (r *cartRepository) UpdateItemQuantity(_ context.Context, customerID, productID uuid.UUID, quantity int32) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := r.store.carts[customerID]
	item, ok := items[productID]
	if !ok {
		return false, nil
	}

	item.Quantity = quantity
	items[productID] = item

	return true, nil
}

func (r *cartRepository) DeleteItem(_ context.Context, customerID, productID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := r.store.carts[customerID]
	if _, ok := items[productID]; !ok {
		return false, nil
	}

	delete(items, productID)
	return true, nil
}

func (r *cartRepository) Clear(_ context.Context, customerID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.carts, customerID)
	return nil
}

func sortedCartItems(items map[uuid.UUID]domain.CartItem) []domain.CartItem {
	var result []domain.CartItem
	for _, item := range items {
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result
}
