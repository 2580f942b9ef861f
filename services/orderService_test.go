package services

import (
	"testing"

	"github.com/mouakos/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishOrderEvent(orderID uint, orderNumber string, eventType string) error {
	p.events = append(p.events, eventType)
	return nil
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	publisher := &recordingPublisher{}
	orders := NewOrderService(db, NewInventoryService(), publisher)
	carts := NewCartService(db)

	user := createTestUser(t, db, "alice")
	address := createTestAddress(t, db, user.ID)
	widget := createTestProduct(t, db, "widget", 5.00, 10)
	gadget := createTestProduct(t, db, "gadget", 20.00, 3)

	_, err := carts.AddItem(user.ID, widget.ID, 5)
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, gadget.ID, 1)
	require.NoError(t, err)

	order, err := orders.Checkout(user.ID, address.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	requireDecimalEqual(t, 45.00, order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, address.ID, order.ShippingAddressID)
	assert.Equal(t, address.ID, order.BillingAddressID, "billing defaults to shipping")

	assert.Equal(t, 5, productStock(t, db, widget.ID))
	assert.Equal(t, 2, productStock(t, db, gadget.ID))

	cart, err := carts.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	requireDecimalEqual(t, 0, cart.TotalAmount)

	assert.Equal(t, []string{"order.created"}, publisher.events)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	user := createTestUser(t, db, "alice")
	address := createTestAddress(t, db, user.ID)

	_, err := orders.Checkout(user.ID, address.ID, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRejectsForeignAddress(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	carts := NewCartService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	bobAddress := createTestAddress(t, db, bob.ID)
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := carts.AddItem(alice.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = orders.Checkout(alice.ID, bobAddress.ID, nil)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	// Nothing happened: stock intact, cart intact.
	assert.Equal(t, 10, productStock(t, db, product.ID))
	cart, err := carts.GetOrCreateCart(alice.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCheckoutUsesExplicitBillingAddress(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	carts := NewCartService(db)

	user := createTestUser(t, db, "alice")
	shipping := createTestAddress(t, db, user.ID)
	billing := createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := carts.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := orders.Checkout(user.ID, shipping.ID, &billing.ID)
	require.NoError(t, err)
	assert.Equal(t, shipping.ID, order.ShippingAddressID)
	assert.Equal(t, billing.ID, order.BillingAddressID)
}

// A failing line must abort the whole checkout: lines that passed
// validation keep their stock and the cart keeps all its lines.
func TestCheckoutIsAtomicOnInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	carts := NewCartService(db)

	user := createTestUser(t, db, "alice")
	address := createTestAddress(t, db, user.ID)
	widget := createTestProduct(t, db, "widget", 5.00, 10)
	scarce := createTestProduct(t, db, "scarce", 7.00, 5)

	_, err := carts.AddItem(user.ID, widget.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, scarce.ID, 5)
	require.NoError(t, err)

	// Stock drops behind the cart's back before checkout.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", scarce.ID).Update("stock", 4).Error)

	_, err = orders.Checkout(user.ID, address.ID, nil)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, scarce.ID, stockErr.ProductID)

	assert.Equal(t, 10, productStock(t, db, widget.ID))
	assert.Equal(t, 4, productStock(t, db, scarce.ID))

	cart, err := carts.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	requireDecimalEqual(t, 45.00, cart.TotalAmount)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount, "no partial order may be created")
}

func TestCheckoutForLastUnitSucceedsOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	carts := NewCartService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	aliceAddress := createTestAddress(t, db, alice.ID)
	bobAddress := createTestAddress(t, db, bob.ID)
	product := createTestProduct(t, db, "last-one", 5.00, 1)

	_, err := carts.AddItem(alice.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddItem(bob.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = orders.Checkout(alice.ID, aliceAddress.ID, nil)
	require.NoError(t, err)

	_, err = orders.Checkout(bob.ID, bobAddress.ID, nil)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	assert.Equal(t, 0, productStock(t, db, product.ID), "stock must end at zero, never negative")
}

// Changing the catalog price after checkout must not alter the order.
func TestOrderPricesAreImmutable(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	carts := NewCartService(db)

	user := createTestUser(t, db, "alice")
	address := createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := carts.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)

	order, err := orders.Checkout(user.ID, address.ID, nil)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("price", decimal.NewFromFloat(99.99)).Error)

	reloaded, err := orders.GetOrder(order.ID, user.ID, false)
	require.NoError(t, err)
	requireDecimalEqual(t, 15.00, reloaded.TotalAmount)
	require.Len(t, reloaded.Items, 1)
	requireDecimalEqual(t, 5.00, reloaded.Items[0].UnitPrice)
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	carts := NewCartService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	address := createTestAddress(t, db, alice.ID)
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := carts.AddItem(alice.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orders.Checkout(alice.ID, address.ID, nil)
	require.NoError(t, err)

	_, err = orders.GetOrder(order.ID, bob.ID, false)
	assert.ErrorIs(t, err, ErrNotOwner)

	// Admins can read any order.
	got, err := orders.GetOrder(order.ID, bob.ID, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	db := newTestDB(t)
	publisher := &recordingPublisher{}
	orders := NewOrderService(db, NewInventoryService(), publisher)
	carts := NewCartService(db)

	user := createTestUser(t, db, "alice")
	address := createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := carts.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orders.Checkout(user.ID, address.ID, nil)
	require.NoError(t, err)

	// pending → shipped skips paid and must be rejected.
	_, err = orders.UpdateStatus(order.ID, models.OrderStatusShipped)
	var transitionErr *InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)

	for _, next := range []models.OrderStatus{
		models.OrderStatusPaid,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		updated, err := orders.UpdateStatus(order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// delivered is terminal.
	_, err = orders.UpdateStatus(order.ID, models.OrderStatusCancelled)
	require.ErrorAs(t, err, &transitionErr)

	assert.Equal(t, []string{"order.created", "order.paid", "order.shipped", "order.delivered"}, publisher.events)
}

func TestCancelOrder(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)
	carts := NewCartService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	address := createTestAddress(t, db, alice.ID)
	product := createTestProduct(t, db, "widget", 5.00, 10)

	_, err := carts.AddItem(alice.ID, product.ID, 2)
	require.NoError(t, err)
	order, err := orders.Checkout(alice.ID, address.ID, nil)
	require.NoError(t, err)

	_, err = orders.CancelOrder(order.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	cancelled, err := orders.CancelOrder(order.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// Cancellation does not restock.
	assert.Equal(t, 8, productStock(t, db, product.ID))
}

func TestUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewInventoryService(), nil)

	_, err := orders.GetOrder(42, 1, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = orders.UpdateStatus(42, models.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
