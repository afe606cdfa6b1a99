package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/metrics"
	"github.com/jcardenas/techstore/internal/port"
	"github.com/sirupsen/logrus"
)

type OrderService struct {
	orders  port.OrderRepository
	metrics *metrics.StoreMetrics
	logger  *logrus.Entry
}

func NewOrderService(orders port.OrderRepository, m *metrics.StoreMetrics, logger *logrus.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		metrics: m,
		logger:  logger.WithField("component", "order_service"),
	}
}

// Checkout turns the customer's cart into an order. Prices are snapshotted
// and stock is decremented atomically at the store; an empty cart, an
// inactive product or insufficient stock aborts the whole order.
func (s *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, shippingAddress string) (domain.Order, error) {
	order, err := s.orders.PlaceOrder(ctx, customerID, shippingAddress)
	if err != nil {
		if domain.IsConflict(err) || domain.IsNotFound(err) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("orders.PlaceOrder: %w", err)
	}

	s.metrics.OrderPlaced()
	s.logger.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
		"total":       order.Total.Amount.String(),
	}).Info("order placed")

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return s.orders.GetOrder(ctx, orderID)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error) {
	parsed, err := domain.ToOrderStatus(status)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, parsed); err != nil {
		return domain.Order{}, err
	}

	return s.orders.GetOrder(ctx, orderID)
}
