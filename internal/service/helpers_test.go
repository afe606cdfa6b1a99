package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/repository/memory"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// services wires every service against a shared in-memory store.
type services struct {
	customers *service.CustomerService
	products  *service.ProductService
	carts     *service.CartService
	orders    *service.OrderService
}

func newServices() services {
	store := memory.NewStore()
	logger := testLogger()

	return services{
		customers: service.NewCustomer(store.Customers(), nil, logger),
		products:  service.NewProduct(store.Products(), nil, logger),
		carts:     service.NewCart(store.Carts(), store.Products(), logger),
		orders:    service.NewOrderService(store.Orders(), nil, logger),
	}
}

func fakeCustomerInput() service.CreateCustomerInput {
	return service.CreateCustomerInput{
		Document:  gofakeit.UUID(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Password:  "initial-password",
		Address:   gofakeit.Address().Address,
		Phone:     gofakeit.Phone(),
	}
}

func fakeProductInput(price float64, stock int32) service.CreateProductInput {
	return service.CreateProductInput{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(price),
			Currency: currency.MustParseISO("EUR"),
		},
		Category: gofakeit.ProductCategory(),
		ImageURL: gofakeit.URL(),
		Stock:    stock,
	}
}

func mustCreateProduct(t *testing.T, ctx context.Context, svc *service.ProductService, price float64, stock int32) domain.Product {
	t.Helper()

	product, err := svc.Create(ctx, fakeProductInput(price, stock))
	require.NoError(t, err)
	return product
}
