package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/port"
	"github.com/jcardenas/techstore/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
)

type orderRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.OrderRepository
	customers port.CustomerRepository
	products  port.ProductRepository
	carts     port.CartRepository
	container testcontainers.Container
}

func TestOrderRepositorySuite(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(orderRepositorySuite))
}

func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = connectAndMigrate(ctx, connStr)
	suite.NoError(err)

	suite.repo = repository.NewOrder(suite.pool)
	suite.customers = repository.NewCustomer(suite.pool)
	suite.products = repository.NewProduct(suite.pool)
	suite.carts = repository.NewCart(suite.pool)
}

func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *orderRepositorySuite) seedCustomer() uuid.UUID {
	t := suite.T()

	customer, err := suite.customers.Insert(t.Context(), fakeCustomer())
	require.NoError(t, err)
	return customer.ID
}

func (suite *orderRepositorySuite) seedProduct(stock int32) domain.Product {
	t := suite.T()

	product, err := suite.products.Insert(t.Context(), fakeProduct(stock))
	require.NoError(t, err)
	return product
}

func (suite *orderRepositorySuite) addToCart(customerID, productID uuid.UUID, quantity int32) {
	t := suite.T()

	err := suite.carts.AddItem(t.Context(), customerID, domain.CartItem{ProductID: productID, Quantity: quantity})
	require.NoError(t, err)
}

func (suite *orderRepositorySuite) TestPlaceOrder() {
	t := suite.T()
	ctx := t.Context()

	customerID := suite.seedCustomer()
	first := suite.seedProduct(5)
	second := suite.seedProduct(3)

	suite.addToCart(customerID, first.ID, 2)
	suite.addToCart(customerID, second.ID, 1)

	order, err := suite.repo.PlaceOrder(ctx, customerID, "1 Main Street")
	require.NoError(t, err)

	assert.Equal(t, customerID, order.CustomerID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "1 Main Street", order.ShippingAddress)
	require.Len(t, order.Lines, 2)

	// order total must equal the sum of its lines
	assert.True(t, order.Total.Amount.Equal(order.LinesTotal()),
		"total %s != lines total %s", order.Total.Amount, order.LinesTotal())

	expectedTotal := first.Price.Amount.Mul(decimal.NewFromInt(2)).Add(second.Price.Amount)
	assert.True(t, order.Total.Amount.Equal(expectedTotal))

	// stock is decremented and the cart is cleared
	actualFirst, err := suite.products.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), actualFirst.Stock)

	cart, err := suite.carts.GetCart(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// the stored order round-trips
	stored, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
	assert.True(t, stored.Total.Amount.Equal(order.Total.Amount))
	assert.Len(t, stored.Lines, 2)
}

func (suite *orderRepositorySuite) TestPlaceOrderEmptyCart() {
	t := suite.T()

	customerID := suite.seedCustomer()

	_, err := suite.repo.PlaceOrder(t.Context(), customerID, "1 Main Street")
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}

// a stock failure rolls the whole checkout back: no order, stock untouched,
// cart intact
func (suite *orderRepositorySuite) TestPlaceOrderInsufficientStock() {
	t := suite.T()
	ctx := t.Context()

	customerID := suite.seedCustomer()
	plenty := suite.seedProduct(10)
	scarce := suite.seedProduct(1)

	suite.addToCart(customerID, plenty.ID, 2)
	suite.addToCart(customerID, scarce.ID, 5)

	_, err := suite.repo.PlaceOrder(ctx, customerID, "1 Main Street")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	actualPlenty, err := suite.products.GetByID(ctx, plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(10), actualPlenty.Stock)

	cart, err := suite.carts.GetCart(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	orders, err := suite.repo.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func (suite *orderRepositorySuite) TestPlaceOrderInactiveProduct() {
	t := suite.T()
	ctx := t.Context()

	customerID := suite.seedCustomer()
	product := suite.seedProduct(10)

	suite.addToCart(customerID, product.ID, 1)

	found, err := suite.products.SetActive(ctx, product.ID, false)
	require.NoError(t, err)
	require.True(t, found)

	_, err = suite.repo.PlaceOrder(ctx, customerID, "1 Main Street")
	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func (suite *orderRepositorySuite) TestListByCustomerAndExists() {
	t := suite.T()
	ctx := t.Context()

	customerID := suite.seedCustomer()

	exists, err := suite.repo.ExistsForCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.False(t, exists)

	product := suite.seedProduct(10)
	suite.addToCart(customerID, product.ID, 1)
	first, err := suite.repo.PlaceOrder(ctx, customerID, "1 Main Street")
	require.NoError(t, err)

	suite.addToCart(customerID, product.ID, 2)
	second, err := suite.repo.PlaceOrder(ctx, customerID, "1 Main Street")
	require.NoError(t, err)

	orders, err := suite.repo.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// newest first
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	exists, err = suite.repo.ExistsForCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func (suite *orderRepositorySuite) TestUpdateStatus() {
	t := suite.T()
	ctx := t.Context()

	customerID := suite.seedCustomer()
	product := suite.seedProduct(10)
	suite.addToCart(customerID, product.ID, 1)

	order, err := suite.repo.PlaceOrder(ctx, customerID, "1 Main Street")
	require.NoError(t, err)

	require.NoError(t, suite.repo.UpdateStatus(ctx, order.ID, domain.OrderStatusShipped))

	stored, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, stored.Status)

	err = suite.repo.UpdateStatus(ctx, uuid.New(), domain.OrderStatusShipped)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func (suite *orderRepositorySuite) TestGetOrderUnknown() {
	t := suite.T()

	_, err := suite.repo.GetOrder(t.Context(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
