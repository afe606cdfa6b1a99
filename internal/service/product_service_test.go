package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateStartsActive(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	product := mustCreateProduct(t, ctx, svcs.products, 19.99, 3)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.True(t, product.Active)
	assert.Equal(t, int32(3), product.Stock)
}

// reduce within stock, reject beyond stock, then restock
func TestProductStockScenario(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	product := mustCreateProduct(t, ctx, svcs.products, 10, 5)

	ok, err := svcs.products.ReduceStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	current, err := svcs.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), current.Stock)

	// only 2 left, asking for 3 must be rejected without changing stock
	ok, err = svcs.products.ReduceStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	current, err = svcs.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), current.Stock)

	ok, err = svcs.products.IncreaseStock(ctx, product.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	current, err = svcs.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(12), current.Stock)
}

func TestProductStockOpsOnInactive(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	product := mustCreateProduct(t, ctx, svcs.products, 10, 5)

	found, err := svcs.products.Deactivate(ctx, product.ID)
	require.NoError(t, err)
	require.True(t, found)

	ok, err := svcs.products.ReduceStock(ctx, product.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svcs.products.IncreaseStock(ctx, product.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	current, err := svcs.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), current.Stock)
}

func TestProductDeactivateActivate(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	product := mustCreateProduct(t, ctx, svcs.products, 10, 5)

	found, err := svcs.products.Deactivate(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, found)

	actives, err := svcs.products.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, actives)

	found, err = svcs.products.Activate(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, found)

	actives, err = svcs.products.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, actives, 1)

	found, err = svcs.products.Deactivate(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProductUpdateAndDelete(t *testing.T) {
	svcs := newServices()
	ctx := t.Context()

	product := mustCreateProduct(t, ctx, svcs.products, 10, 5)

	product.Name = "Renamed"
	updated, err := svcs.products.Update(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	deleted, err := svcs.products.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svcs.products.Get(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	deleted, err = svcs.products.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
