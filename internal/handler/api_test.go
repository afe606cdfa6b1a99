package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jcardenas/techstore/internal/dto"
	"github.com/jcardenas/techstore/internal/handler"
	"github.com/jcardenas/techstore/internal/repository/memory"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the JSON API against a fresh in-memory store. The
// storefront needs HTML templates, so it stays out of these tests.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.NewStore()

	customerSvc := service.NewCustomer(store.Customers(), nil, logger)
	productSvc := service.NewProduct(store.Products(), nil, logger)
	cartSvc := service.NewCart(store.Carts(), store.Products(), logger)
	orderSvc := service.NewOrderService(store.Orders(), nil, logger)

	return handler.NewRouter(handler.RouterConfig{
		Customers: handler.NewCustomerHandler(customerSvc, logger),
		Products:  handler.NewProductHandler(productSvc, "EUR", logger),
		Carts:     handler.NewCartHandler(cartSvc, logger),
		Orders:    handler.NewOrderHandler(orderSvc, logger),
		Logger:    logger,
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createCustomer(t *testing.T, router *gin.Engine, email string) dto.Customer {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{
		Document:  email, // unique per email in these tests
		FirstName: "Test",
		LastName:  "Customer",
		Email:     email,
		Password:  "secret-enough",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[dto.Customer](t, rec)
}

func createProduct(t *testing.T, router *gin.Engine, price string, stock int32) dto.Product {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Name:  "Test Product",
		Price: price,
		Stock: stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[dto.Product](t, rec)
}

func TestCustomerEndpoints(t *testing.T) {
	router := newTestRouter(t)

	created := createCustomer(t, router, "ada@example.com")
	assert.Equal(t, "ada@example.com", created.Email)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{
			Document:  "other-document",
			FirstName: "Test",
			LastName:  "Customer",
			Email:     "ADA@example.com",
			Password:  "secret-enough",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{
			Email: "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "document")
	})

	t.Run("get by id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/customers/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		actual := decodeBody[dto.Customer](t, rec)
		assert.Equal(t, created.ID, actual.ID)
		// the hash must not appear anywhere in the payload
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("unknown id is 404, malformed id is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/customers/00000000-0000-0000-0000-000000000001", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/api/customers/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", dto.CredentialsRequest{
			Email:    "ada@example.com",
			Password: "secret-enough",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/auth/login", dto.CredentialsRequest{
			Email:    "ada@example.com",
			Password: "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/api/customers/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, router, http.MethodDelete, "/api/customers/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductStockEndpoints(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "49.90", 5)
	assert.Equal(t, "EUR", product.Price.Currency, "default currency applies")

	base := "/api/products/" + product.ID.String()

	rec := doJSON(t, router, http.MethodPost, base+"/stock/reduce", dto.StockRequest{Quantity: 3})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// only 2 left now
	rec = doJSON(t, router, http.MethodPost, base+"/stock/reduce", dto.StockRequest{Quantity: 3})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/stock/increase", dto.StockRequest{Quantity: 10})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(12), decodeBody[dto.Product](t, rec).Stock)

	rec = doJSON(t, router, http.MethodPost, base+"/stock/reduce", dto.StockRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	customer := createCustomer(t, router, "buyer@example.com")
	product := createProduct(t, router, "10.00", 5)

	cartBase := fmt.Sprintf("/api/customers/%s/cart", customer.ID)

	rec := doJSON(t, router, http.MethodPost, cartBase+"/items", dto.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, cartBase, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeBody[dto.Cart](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "20", cart.Total.Amount)

	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/customers/%s/orders", customer.ID),
		dto.CheckoutRequest{ShippingAddress: "1 Main Street"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	order := decodeBody[dto.Order](t, rec)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "20", order.Total.Amount)

	// cart is empty afterwards; a second checkout is a conflict
	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/customers/%s/orders", customer.ID),
		dto.CheckoutRequest{ShippingAddress: "1 Main Street"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// deleting a customer with orders is blocked
	rec = doJSON(t, router, http.MethodDelete, "/api/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPut,
		"/api/orders/"+order.ID.String()+"/status",
		dto.UpdateOrderStatusRequest{Status: "shipped"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shipped", decodeBody[dto.Order](t, rec).Status)

	rec = doJSON(t, router, http.MethodPut,
		"/api/orders/"+order.ID.String()+"/status",
		dto.UpdateOrderStatusRequest{Status: "teleported"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
