package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
	ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)

	// PlaceOrder turns the customer's cart into an order in one transaction:
	// unit prices are snapshotted from the catalog, stock is decremented with
	// conditional updates, order and lines are inserted, the cart is cleared.
	// Any line failing the stock condition rolls the whole order back.
	PlaceOrder(ctx context.Context, customerID uuid.UUID, shippingAddress string) (domain.Order, error)

	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
}
