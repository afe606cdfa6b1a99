package service_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreate(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	input := fakeCustomerInput()

	customer, err := svcs.customers.Create(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, input.Email, customer.Email)
	// the hash never leaves the service layer
	assert.Empty(t, customer.PasswordHash)
}

func TestCustomerCreateConflicts(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	existing := fakeCustomerInput()
	_, err := svcs.customers.Create(ctx, existing)
	require.NoError(t, err)

	t.Run("duplicate email different case", func(t *testing.T) {
		input := fakeCustomerInput()
		input.Email = strings.ToUpper(existing.Email)

		_, err := svcs.customers.Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("duplicate document", func(t *testing.T) {
		input := fakeCustomerInput()
		input.Document = existing.Document

		_, err := svcs.customers.Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrDocumentTaken)
	})
}

func TestCustomerAuthenticate(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	input := fakeCustomerInput()
	created, err := svcs.customers.Create(ctx, input)
	require.NoError(t, err)

	t.Run("unknown email: no match, no error", func(t *testing.T) {
		_, ok, err := svcs.customers.Authenticate(ctx, "nobody@example.com", "whatever")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong password: no match", func(t *testing.T) {
		_, ok, err := svcs.customers.Authenticate(ctx, input.Email, "wrong-password")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("correct credentials: match without hash", func(t *testing.T) {
		customer, ok, err := svcs.customers.Authenticate(ctx, input.Email, input.Password)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, created.ID, customer.ID)
		assert.Empty(t, customer.PasswordHash)
	})
}

func TestCustomerChangePassword(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	input := fakeCustomerInput()
	created, err := svcs.customers.Create(ctx, input)
	require.NoError(t, err)

	err = svcs.customers.ChangePassword(ctx, created.ID, "not-the-password", "next-password")
	assert.ErrorIs(t, err, domain.ErrCurrentPasswordMismatch)

	require.NoError(t, svcs.customers.ChangePassword(ctx, created.ID, input.Password, "next-password"))

	_, ok, err := svcs.customers.Authenticate(ctx, input.Email, input.Password)
	require.NoError(t, err)
	assert.False(t, ok, "old password must stop working")

	_, ok, err = svcs.customers.Authenticate(ctx, input.Email, "next-password")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCustomerResetPassword(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	input := fakeCustomerInput()
	_, err := svcs.customers.Create(ctx, input)
	require.NoError(t, err)

	err = svcs.customers.ResetPassword(ctx, "nobody@example.com", "reset-password")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	require.NoError(t, svcs.customers.ResetPassword(ctx, input.Email, "reset-password"))

	_, ok, err := svcs.customers.Authenticate(ctx, input.Email, "reset-password")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCustomerUpdate(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	created, err := svcs.customers.Create(ctx, fakeCustomerInput())
	require.NoError(t, err)

	updated, err := svcs.customers.Update(ctx, created.ID, domain.CustomerUpdate{
		FirstName: "New",
		LastName:  "Name",
		Address:   "2 Other Street",
		Phone:     "555-0101",
	})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "2 Other Street", updated.Address)
	assert.Empty(t, updated.PasswordHash)

	// email and document are untouched by profile updates
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Document, updated.Document)
}

// deleting a customer with order history must fail and leave the record
func TestCustomerDeleteBlockedByOrders(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	created, err := svcs.customers.Create(ctx, fakeCustomerInput())
	require.NoError(t, err)

	product := mustCreateProduct(t, ctx, svcs.products, 10, 5)
	require.NoError(t, svcs.carts.AddItem(ctx, created.ID, product.ID, 1))

	_, err = svcs.orders.Checkout(ctx, created.ID, "1 Main Street")
	require.NoError(t, err)

	err = svcs.customers.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerHasOrders)

	_, err = svcs.customers.Get(ctx, created.ID)
	assert.NoError(t, err)
}

func TestCustomerDelete(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	created, err := svcs.customers.Create(ctx, fakeCustomerInput())
	require.NoError(t, err)

	require.NoError(t, svcs.customers.Delete(ctx, created.ID))

	_, err = svcs.customers.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	err = svcs.customers.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerListNeverLeaksHashes(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	for range 3 {
		_, err := svcs.customers.Create(ctx, fakeCustomerInput())
		require.NoError(t, err)
	}

	customers, err := svcs.customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)

	for _, c := range customers {
		assert.Empty(t, c.PasswordHash)
	}
}
