package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/port"
	"github.com/sirupsen/logrus"
)

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	logger   *logrus.Entry
}

func NewCart(carts port.CartRepository, products port.ProductRepository, logger *logrus.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger.WithField("component", "cart_service"),
	}
}

// CartItemDetail is a cart item hydrated with its product.
type CartItemDetail struct {
	Product  domain.Product
	Quantity int32
	Subtotal domain.Money
}

type CartDetail struct {
	CustomerID uuid.UUID
	Items      []CartItemDetail
	Total      domain.Money
}

func (s *CartService) GetCart(ctx context.Context, customerID uuid.UUID) (CartDetail, error) {
	cart, err := s.carts.GetCart(ctx, customerID)
	if err != nil {
		return CartDetail{}, fmt.Errorf("carts.GetCart: %w", err)
	}

	detail := CartDetail{CustomerID: customerID}

	for i, item := range cart.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return CartDetail{}, fmt.Errorf("products.GetByID[%s]: %w", item.ProductID, err)
		}

		subtotal := product.Price.Mul(item.Quantity)
		detail.Items = append(detail.Items, CartItemDetail{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})

		if i == 0 {
			detail.Total = subtotal
		} else {
			detail.Total = detail.Total.Add(subtotal)
		}
	}

	return detail, nil
}

// AddItem puts quantity units of an existing, active product into the cart.
// Quantity defaults to 1.
func (s *CartService) AddItem(ctx context.Context, customerID, productID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Active {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrProductInactive)
	}

	if err := s.carts.AddItem(ctx, customerID, domain.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	}); err != nil {
		return fmt.Errorf("carts.AddItem: %w", err)
	}

	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, customerID, productID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, customerID, productID)
	}

	found, err := s.carts.UpdateItemQuantity(ctx, customerID, productID, quantity)
	if err != nil {
		return fmt.Errorf("carts.UpdateItemQuantity: %w", err)
	}
	if !found {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) error {
	found, err := s.carts.DeleteItem(ctx, customerID, productID)
	if err != nil {
		return fmt.Errorf("carts.DeleteItem: %w", err)
	}
	if !found {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (s *CartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	if err := s.carts.Clear(ctx, customerID); err != nil {
		return fmt.Errorf("carts.Clear: %w", err)
	}
	return nil
}
