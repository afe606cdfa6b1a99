package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/port"
	"github.com/shopspring/decimal"
)

const orderColumns = "id, customer_id, status, total_amount::text, total_currency, shipping_address, order_date, created_at"

type orderRepository struct {
	db querier
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", orderID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	lines, err := r.loadLines(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("loadLines: %w", err)
	}
	order.Lines = lines

	return order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC, id DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	for i := range orders {
		lines, err := r.loadLines(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("loadLines: %w", err)
		}
		orders[i].Lines = lines
	}

	return orders, nil
}

func (r *orderRepository) ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM orders WHERE customer_id = $1)", customerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("orders exist: %w", err)
	}
	return exists, nil
}

// cartLine is a cart item joined with its product at checkout time.
type cartLine struct {
	productID uuid.UUID
	quantity  int32
	unitPrice domain.Money
	active    bool
}

func (r *orderRepository) PlaceOrder(ctx context.Context, customerID uuid.UUID, shippingAddress string) (domain.Order, error) {
	order, err := withTx(ctx, r.db, func(q querier) (domain.Order, error) {
		var o domain.Order

		lines, err := loadCartLines(ctx, q, customerID)
		if err != nil {
			return o, fmt.Errorf("loadCartLines: %w", err)
		}

		if len(lines) == 0 {
			return o, domain.ErrCartEmpty
		}

		total := decimal.Zero
		for _, line := range lines {
			if !line.active {
				return o, fmt.Errorf("product[%s]: %w", line.productID, domain.ErrProductInactive)
			}

			// Conditional decrement: zero rows affected means the stock check
			// failed under this transaction and the whole order rolls back.
			cmdTag, err := q.Exec(ctx, `
				UPDATE products
				SET stock = stock - $2
				WHERE id = $1 AND active AND stock >= $2
			`, line.productID, line.quantity)
			if err != nil {
				return o, fmt.Errorf("reduce stock: %w", err)
			}
			if cmdTag.RowsAffected() == 0 {
				return o, fmt.Errorf("product[%s]: %w", line.productID, domain.ErrInsufficientStock)
			}

			total = total.Add(line.unitPrice.Amount.Mul(decimal.NewFromInt32(line.quantity)))
		}

		currencyUnit := lines[0].unitPrice.Currency

		err = q.QueryRow(ctx, `
			INSERT INTO orders (customer_id, status, total_amount, total_currency, shipping_address)
			VALUES ($1, $2, $3::numeric, $4, $5)
			RETURNING id, order_date, created_at
		`,
			customerID, string(domain.OrderStatusPending),
			total.String(), currencyUnit.String(), shippingAddress,
		).Scan(&o.ID, &o.OrderDate, &o.CreatedAt)
		if err != nil {
			return o, fmt.Errorf("insert order: %w", err)
		}

		o.CustomerID = customerID
		o.Status = domain.OrderStatusPending
		o.Total = domain.Money{Amount: total, Currency: currencyUnit}
		o.ShippingAddress = shippingAddress

		// TODO: batch line inserts with pgx.Batch once order sizes grow
		for _, line := range lines {
			if _, err := q.Exec(ctx, `
				INSERT INTO order_lines (order_id, product_id, quantity, unit_price_amount, unit_price_currency)
				VALUES ($1, $2, $3, $4::numeric, $5)
			`,
				o.ID, line.productID, line.quantity,
				line.unitPrice.Amount.String(), line.unitPrice.Currency.String(),
			); err != nil {
				return o, fmt.Errorf("insert order line: %w", err)
			}

			o.Lines = append(o.Lines, domain.OrderLine{
				ProductID: line.productID,
				Quantity:  line.quantity,
				UnitPrice: line.unitPrice,
			})
		}

		if _, err := q.Exec(ctx,
			"DELETE FROM cart_items WHERE customer_id = $1", customerID); err != nil {
			return o, fmt.Errorf("clear cart: %w", err)
		}

		return o, nil
	})
	if err != nil {
		if domain.IsConflict(err) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE orders SET status = $2 WHERE id = $1", orderID, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func loadCartLines(ctx context.Context, q querier, customerID uuid.UUID) ([]cartLine, error) {
	rows, err := q.Query(ctx, `
		SELECT ci.product_id, ci.quantity, p.price_amount::text, p.price_currency, p.active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.created_at
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var (
			line          cartLine
			priceAmount   string
			priceCurrency string
		)

		if err := rows.Scan(&line.productID, &line.quantity, &priceAmount, &priceCurrency, &line.active); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}

		amount, err := decimal.NewFromString(priceAmount)
		if err != nil {
			return nil, fmt.Errorf("price[%s] is not valid: %w", priceAmount, err)
		}

		line.unitPrice, err = domain.NewMoney(amount, priceCurrency)
		if err != nil {
			return nil, fmt.Errorf("domain.NewMoney: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, quantity, unit_price_amount::text, unit_price_currency, created_at
		FROM order_lines
		WHERE order_id = $1
		ORDER BY created_at
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var (
			line          domain.OrderLine
			priceAmount   string
			priceCurrency string
		)

		if err := rows.Scan(&line.ProductID, &line.Quantity, &priceAmount, &priceCurrency, &line.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}

		amount, err := decimal.NewFromString(priceAmount)
		if err != nil {
			return nil, fmt.Errorf("unit price[%s] is not valid: %w", priceAmount, err)
		}

		line.UnitPrice, err = domain.NewMoney(amount, priceCurrency)
		if err != nil {
			return nil, fmt.Errorf("domain.NewMoney: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o             domain.Order
		status        string
		totalAmount   string
		totalCurrency string
	)

	err := row.Scan(
		&o.ID, &o.CustomerID, &status, &totalAmount, &totalCurrency,
		&o.ShippingAddress, &o.OrderDate, &o.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	o.Status, err = domain.ToOrderStatus(status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	amount, err := decimal.NewFromString(totalAmount)
	if err != nil {
		return domain.Order{}, fmt.Errorf("total[%s] is not valid: %w", totalAmount, err)
	}

	o.Total, err = domain.NewMoney(amount, totalCurrency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.NewMoney: %w", err)
	}

	return o, nil
}
