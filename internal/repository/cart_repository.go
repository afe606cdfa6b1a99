package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/port"
)

type cartRepository struct {
	db querier
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{db: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) GetCart(ctx context.Context, customerID uuid.UUID) (domain.Cart, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, quantity, created_at
		FROM cart_items
		WHERE customer_id = $1
		ORDER BY created_at
	`, customerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return domain.Cart{}, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("rows.Err: %w", err)
	}

	return domain.Cart{
		CustomerID: customerID,
		Items:      items,
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, customerID uuid.UUID, item domain.CartItem) error {
	// Re-adding a product accumulates its quantity.
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, customerID, item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, quantity int32) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE cart_items
		SET quantity = $3
		WHERE customer_id = $1 AND product_id = $2
	`, customerID, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("update cart item: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		"DELETE FROM cart_items WHERE customer_id = $1 AND product_id = $2",
		customerID, productID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, customerID uuid.UUID) error {
	if _, err := r.db.Exec(ctx,
		"DELETE FROM cart_items WHERE customer_id = $1", customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
