package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, customerID uuid.UUID) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
	GetByDocument(ctx context.Context, document string) (domain.Customer, error)

	List(ctx context.Context) ([]domain.Customer, error)
	// Search matches term case-insensitively against first name, last name,
	// email and document. An empty term returns the full list.
	Search(ctx context.Context, term string) ([]domain.Customer, error)
	Count(ctx context.Context) (int64, error)

	Exists(ctx context.Context, customerID uuid.UUID) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	DocumentExists(ctx context.Context, document string) (bool, error)

	Insert(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Update(ctx context.Context, customerID uuid.UUID, update domain.CustomerUpdate) (domain.Customer, error)
	UpdatePasswordHash(ctx context.Context, customerID uuid.UUID, passwordHash string) error

	// Delete removes the customer only if no orders reference it: the order
	// check and the delete execute as one atomic store operation.
	Delete(ctx context.Context, customerID uuid.UUID) error
}
