package services

import (
	"errors"
	"fmt"

	"github.com/mouakos/ecommerce-api/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotOwner         = errors.New("resource does not belong to the user")
)

// InsufficientStockError names the offending product so the caller can
// correct the quantity and retry.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

type InvalidStatusTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %s to %s", e.From, e.To)
}
