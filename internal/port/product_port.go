package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	List(ctx context.Context) ([]domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	// Search matches term case-insensitively against name, description and
	// category, restricted to active products.
	Search(ctx context.Context, term string) ([]domain.Product, error)

	Insert(ctx context.Context, product domain.Product) (domain.Product, error)
	// Update overwrites all mutable fields wholesale.
	Update(ctx context.Context, product domain.Product) (domain.Product, error)

	Delete(ctx context.Context, productID uuid.UUID) (bool, error)
	SetActive(ctx context.Context, productID uuid.UUID, active bool) (bool, error)

	// ReduceStock decrements stock by quantity with a single conditional
	// update: it reports false without mutating when the product is missing,
	// inactive, or has less stock than requested.
	ReduceStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error)
	// IncreaseStock increments stock unconditionally for an existing active
	// product.
	IncreaseStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error)
}
