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
)

const customerColumns = "id, document, first_name, last_name, email, password_hash, address, phone, created_at"

type customerRepository struct {
	db querier
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{db: pool}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{db: tx}
}

func (r *customerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = $1", customerID)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE LOWER(email) = LOWER($1)", email)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer by email: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) GetByDocument(ctx context.Context, document string) (domain.Customer, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE document = $1", document)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer by document: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+customerColumns+" FROM customers ORDER BY last_name, first_name")
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *customerRepository) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	if term == "" {
		return r.List(ctx)
	}

	pattern := "%" + term + "%"

	rows, err := r.db.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE first_name ILIKE $1
		   OR last_name ILIKE $1
		   OR email ILIKE $1
		   OR document ILIKE $1
		ORDER BY last_name, first_name
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

func (r *customerRepository) Exists(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)", customerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("customer exists: %w", err)
	}
	return exists, nil
}

func (r *customerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM customers WHERE LOWER(email) = LOWER($1))", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

func (r *customerRepository) DocumentExists(ctx context.Context, document string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM customers WHERE document = $1)", document).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("document exists: %w", err)
	}
	return exists, nil
}

func (r *customerRepository) Insert(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO customers (document, first_name, last_name, email, password_hash, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		customer.Document, customer.FirstName, customer.LastName,
		customer.Email, customer.PasswordHash, customer.Address, customer.Phone,
	)

	if err := row.Scan(&customer.ID, &customer.CreatedAt); err != nil {
		// The unique indexes are authoritative under concurrent inserts.
		switch uniqueViolationConstraint(err) {
		case "customers_email_lower_key":
			return domain.Customer{}, domain.ErrEmailTaken
		case "customers_document_key":
			return domain.Customer{}, domain.ErrDocumentTaken
		}
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customerID uuid.UUID, update domain.CustomerUpdate) (domain.Customer, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE customers
		SET first_name = $2, last_name = $3, address = $4, phone = $5
		WHERE id = $1
		RETURNING `+customerColumns+`
	`, customerID, update.FirstName, update.LastName, update.Address, update.Phone)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) UpdatePasswordHash(ctx context.Context, customerID uuid.UUID, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE customers SET password_hash = $2 WHERE id = $1", customerID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	// The order check and the delete run as one conditional statement inside
	// a transaction, so a concurrent checkout cannot slip between them.
	_, err := withTx(ctx, r.db, func(q querier) (struct{}, error) {
		var exists bool
		if err := q.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)", customerID).Scan(&exists); err != nil {
			return struct{}{}, fmt.Errorf("customer exists: %w", err)
		}
		if !exists {
			return struct{}{}, domain.ErrCustomerNotFound
		}

		cmdTag, err := q.Exec(ctx, `
			DELETE FROM customers
			WHERE id = $1
			  AND NOT EXISTS (SELECT 1 FROM orders WHERE customer_id = $1)
		`, customerID)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete customer: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return struct{}{}, domain.ErrCustomerHasOrders
		}

		return struct{}{}, nil
	})
	if err != nil {
		if domain.IsNotFound(err) || domain.IsConflict(err) {
			return err
		}
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer

	err := row.Scan(
		&c.ID, &c.Document, &c.FirstName, &c.LastName,
		&c.Email, &c.PasswordHash, &c.Address, &c.Phone, &c.CreatedAt,
	)
	if err != nil {
		return domain.Customer{}, err
	}

	return c, nil
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer

	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return customers, nil
}
