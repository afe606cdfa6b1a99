package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	store *Store
}

func (r *orderRepository) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *orderRepository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var orders []domain.Order
	for _, order := range r.store.orders {
		if order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})

	return orders, nil
}

func (r *orderRepository) ExistsForCustomer(_ context.Context, customerID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, order := range r.store.orders {
		if order.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *orderRepository) PlaceOrder(_ context.Context, customerID uuid.UUID, shippingAddress string) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := sortedCartItems(r.store.carts[customerID])
	if len(items) == 0 {
		return domain.Order{}, domain.ErrCartEmpty
	}

	// Validate every line before mutating anything, mirroring the rollback
	// behavior of the transactional Postgres implementation.
	for _, item := range items {
		product, ok := r.store.products[item.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("product[%s]: %w", item.ProductID, domain.ErrProductNotFound)
		}
		if !product.Active {
			return domain.Order{}, fmt.Errorf("product[%s]: %w", item.ProductID, domain.ErrProductInactive)
		}
		if product.Stock < item.Quantity {
			return domain.Order{}, fmt.Errorf("product[%s]: %w", item.ProductID, domain.ErrInsufficientStock)
		}
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: shippingAddress,
		OrderDate:       now,
		CreatedAt:       now,
	}

	total := decimal.Zero
	for _, item := range items {
		product := r.store.products[item.ProductID]
		product.Stock -= item.Quantity
		r.store.products[item.ProductID] = product

		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			CreatedAt: now,
		})

		total = total.Add(product.Price.Amount.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	order.Total = domain.Money{
		Amount:   total,
		Currency: order.Lines[0].UnitPrice.Currency,
	}

	r.store.orders[order.ID] = order
	delete(r.store.carts, customerID)

	return order, nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}

	order.Status = status
	r.store.orders[orderID] = order

	return nil
}
