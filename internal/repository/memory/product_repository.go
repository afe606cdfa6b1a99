package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
)

type productRepository struct {
	store *Store
}

func (r *productRepository) GetByID(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *productRepository) List(_ context.Context) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return sortedProducts(r.store.products, func(domain.Product) bool { return true }), nil
}

func (r *productRepository) ListActive(_ context.Context) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return sortedProducts(r.store.products, func(p domain.Product) bool { return p.Active }), nil
}

func (r *productRepository) ListByCategory(_ context.Context, category string) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return sortedProducts(r.store.products, func(p domain.Product) bool {
		return p.Active && p.Category == category
	}), nil
}

func (r *productRepository) Search(_ context.Context, term string) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(term)

	return sortedProducts(r.store.products, func(p domain.Product) bool {
		return p.Active &&
			(strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) ||
				strings.Contains(strings.ToLower(p.Category), needle))
	}), nil
}

func (r *productRepository) Insert(_ context.Context, product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product.ID = uuid.New()
	product.CreatedAt = time.Now().UTC()
	r.store.products[product.ID] = product

	return product, nil
}

func (r *productRepository) Update(_ context.Context, product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.products[product.ID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}

	product.CreatedAt = existing.CreatedAt
	r.store.products[product.ID] = product

	return product, nil
}

func (r *productRepository) Delete(_ context.Context, productID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[productID]; !ok {
		return false, nil
	}

	delete(r.store.products, productID)
	return true, nil
}

func (r *productRepository) SetActive(_ context.Context, productID uuid.UUID, active bool) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[productID]
	if !ok {
		return false, nil
	}

	product.Active = active
	r.store.products[productID] = product

	return true, nil
}

func (r *productRepository) ReduceStock(_ context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[productID]
	if !ok || !product.Active || product.Stock < quantity {
		return false, nil
	}

	product.Stock -= quantity
	r.store.products[productID] = product

	return true, nil
}

func (r *productRepository) IncreaseStock(_ context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[productID]
	if !ok || !product.Active {
		return false, nil
	}

	product.Stock += quantity
	r.store.products[productID] = product

	return true, nil
}

func sortedProducts(products map[uuid.UUID]domain.Product, match func(domain.Product) bool) []domain.Product {
	var result []domain.Product
	for _, product := range products {
		if match(product) {
			result = append(result, product)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
