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

// price_amount is selected as text and parsed into decimal.Decimal to keep
// NUMERIC exact end to end.
const productColumns = "id, name, description, price_amount::text, price_currency, category, image_url, stock, active, created_at"

type productRepository struct {
	db querier
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{db: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) GetByID(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", productID)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+productColumns+" FROM products WHERE active ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("select active products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+productColumns+" FROM products WHERE active AND category = $1 ORDER BY name", category)
	if err != nil {
		return nil, fmt.Errorf("select products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	pattern := "%" + term + "%"

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE active
		  AND (name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		ORDER BY name
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) Insert(ctx context.Context, product domain.Product) (domain.Product, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price_amount, price_currency, category, image_url, stock, active)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		product.Name, product.Description,
		product.Price.Amount.String(), product.Price.Currency.String(),
		product.Category, product.ImageURL, product.Stock, product.Active,
	)

	if err := row.Scan(&product.ID, &product.CreatedAt); err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE products
		SET name = $2, description = $3, price_amount = $4::numeric, price_currency = $5,
		    category = $6, image_url = $7, stock = $8, active = $9
		WHERE id = $1
		RETURNING `+productColumns+`
	`,
		product.ID, product.Name, product.Description,
		product.Price.Amount.String(), product.Price.Currency.String(),
		product.Category, product.ImageURL, product.Stock, product.Active,
	)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	return updated, nil
}

func (r *productRepository) Delete(ctx context.Context, productID uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *productRepository) SetActive(ctx context.Context, productID uuid.UUID, active bool) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE products SET active = $2 WHERE id = $1", productID, active)
	if err != nil {
		return false, fmt.Errorf("set product active: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *productRepository) ReduceStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	// Single conditional update: the availability check and the decrement are
	// one statement, so concurrent decrements can never drive stock negative.
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND active AND stock >= $2
	`, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("reduce stock: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *productRepository) IncreaseStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE products
		SET stock = stock + $2
		WHERE id = $1 AND active
	`, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("increase stock: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p             domain.Product
		priceAmount   string
		priceCurrency string
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &priceAmount, &priceCurrency,
		&p.Category, &p.ImageURL, &p.Stock, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	amount, err := decimal.NewFromString(priceAmount)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] is not valid: %w", priceAmount, err)
	}

	p.Price, err = domain.NewMoney(amount, priceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("domain.NewMoney: %w", err)
	}

	return p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}
