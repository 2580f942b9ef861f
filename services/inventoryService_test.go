package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryReserve(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryService()
	product := createTestProduct(t, db, "widget", 5.00, 10)

	require.NoError(t, inventory.Reserve(db, product.ID, 4))
	assert.Equal(t, 6, productStock(t, db, product.ID))

	require.NoError(t, inventory.Reserve(db, product.ID, 6))
	assert.Equal(t, 0, productStock(t, db, product.ID))
}

func TestInventoryReserveInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryService()
	product := createTestProduct(t, db, "widget", 5.00, 3)

	err := inventory.Reserve(db, product.ID, 4)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	// Failed reservation must not change stock.
	assert.Equal(t, 3, productStock(t, db, product.ID))
}

func TestInventoryReserveUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryService()

	err := inventory.Reserve(db, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
