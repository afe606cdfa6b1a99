package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (domain.Cart, error)

	// AddItem upserts: adding a product already in the cart accumulates
	// its quantity.
	AddItem(ctx context.Context, customerID uuid.UUID, item domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, quantity int32) (bool, error)
	DeleteItem(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	Clear(ctx context.Context, customerID uuid.UUID) error
}
