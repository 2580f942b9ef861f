package services

import (
	"testing"

	"github.com/mouakos/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireDecimalEqual(t *testing.T, expected float64, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.NewFromFloat(expected).Equal(actual),
		"expected %v, got %s", expected, actual)
}

func cartTotal(t *testing.T, svc *CartService, userID uint) decimal.Decimal {
	t.Helper()
	cart, err := svc.GetOrCreateCart(userID)
	require.NoError(t, err)
	return cart.TotalAmount
}

func TestGetOrCreateCartIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")

	first, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	second, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemSnapshotsPriceAndComputesSubtotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	product := createTestProduct(t, db, "widget", 5.00, 10)

	item, err := svc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	requireDecimalEqual(t, 5.00, item.UnitPrice)
	requireDecimalEqual(t, 15.00, item.Subtotal)
	requireDecimalEqual(t, 15.00, cartTotal(t, svc, user.ID))
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := svc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)
	item, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)
	requireDecimalEqual(t, 25.00, item.Subtotal)

	cart, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "adding the same product twice must not create a second line")
	requireDecimalEqual(t, 25.00, cart.TotalAmount)
}

func TestAddItemCumulativeQuantityExceedingStockFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := svc.AddItem(user.ID, product.ID, 8)
	require.NoError(t, err)

	_, err = svc.AddItem(user.ID, product.ID, 3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 11, stockErr.Requested)

	// Cart unchanged after the failed add.
	cart, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 8, cart.Items[0].Quantity)
	requireDecimalEqual(t, 40.00, cart.TotalAmount)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")

	_, err := svc.AddItem(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateItemRecomputesSubtotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	product := createTestProduct(t, db, "widget", 5.00, 10)

	item, err := svc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)

	updated, err := svc.UpdateItem(user.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
	requireDecimalEqual(t, 35.00, updated.Subtotal)
	requireDecimalEqual(t, 35.00, cartTotal(t, svc, user.ID))
}

func TestUpdateItemExceedingStockLeavesCartUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	product := createTestProduct(t, db, "widget", 5.00, 10)

	item, err := svc.AddItem(user.ID, product.ID, 5)
	require.NoError(t, err)

	_, err = svc.UpdateItem(user.ID, item.ID, 11)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	cart, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	requireDecimalEqual(t, 25.00, cart.TotalAmount)
}

func TestUpdateItemNotInCallersCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	product := createTestProduct(t, db, "widget", 5.00, 10)

	item, err := svc.AddItem(alice.ID, product.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateItem(bob.ID, item.ID, 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	widget := createTestProduct(t, db, "widget", 5.00, 10)
	gadget := createTestProduct(t, db, "gadget", 20.00, 10)

	item, err := svc.AddItem(user.ID, widget.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(user.ID, gadget.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(user.ID, item.ID))

	cart, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	requireDecimalEqual(t, 20.00, cart.TotalAmount)

	assert.ErrorIs(t, svc.RemoveItem(user.ID, item.ID), ErrCartItemNotFound)
}

func TestClearCartKeepsCartRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := svc.AddItem(user.ID, product.ID, 4)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(user.ID))

	cart, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	requireDecimalEqual(t, 0, cart.TotalAmount)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// The cart total must always equal the sum of its line subtotals, and
// each subtotal must equal unit price times quantity.
func TestCartTotalMatchesLineSubtotals(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "alice")
	widget := createTestProduct(t, db, "widget", 2.50, 100)
	gadget := createTestProduct(t, db, "gadget", 9.99, 100)

	_, err := svc.AddItem(user.ID, widget.ID, 4)
	require.NoError(t, err)
	item, err := svc.AddItem(user.ID, gadget.ID, 2)
	require.NoError(t, err)
	_, err = svc.UpdateItem(user.ID, item.ID, 3)
	require.NoError(t, err)

	cart, err := svc.GetOrCreateCart(user.ID)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, line := range cart.Items {
		expected := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		require.True(t, expected.Equal(line.Subtotal))
		sum = sum.Add(line.Subtotal)
	}
	require.True(t, sum.Equal(cart.TotalAmount))
}
