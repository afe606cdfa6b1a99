package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/text/currency"
)

// startPostgres runs a disposable postgres container and returns a DSN
// pointing at it. Callers terminate the container in suite teardown.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("techstore"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

// connectAndMigrate opens a pool against the container and applies the
// embedded migrations.
func connectAndMigrate(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repository.Migrate: %w", err)
	}

	return pool, nil
}

func fakeCustomer() domain.Customer {
	return domain.Customer{
		Document:     gofakeit.UUID(),
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		Email:        gofakeit.Email(),
		PasswordHash: gofakeit.UUID(),
		Address:      gofakeit.Address().Address,
		Phone:        gofakeit.Phone(),
	}
}

func fakeProduct(stock int32) domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
			Currency: currency.MustParseISO("EUR"),
		},
		Category: gofakeit.ProductCategory(),
		ImageURL: gofakeit.URL(),
		Stock:    stock,
		Active:   true,
	}
}

// cmpMoney makes decimal and currency values comparable by value rather than
// by internal representation: NUMERIC(12,2) round-trips change the exponent.
var cmpMoney = cmp.Options{
	cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	}),
	cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	}),
}

func assertNoDiff[T any](t *testing.T, expected, actual T, opts ...cmp.Option) {
	t.Helper()

	opts = append(opts, cmpMoney)
	assert.Empty(t, cmp.Diff(expected, actual, opts...))
}
