package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusTransitions is the allowed lifecycle graph. delivered and
// cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is immutable once created: quantity and unit price are
// copied from the cart line at checkout and never re-read from the
// product afterwards.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId" gorm:"index"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
}

type Order struct {
	gorm.Model
	OrderNumber       string          `json:"orderNumber" gorm:"uniqueIndex;size:64"`
	UserID            uint            `json:"userId" gorm:"index"`
	Status            OrderStatus     `json:"status" gorm:"size:16"`
	TotalAmount       decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2)"`
	ShippingAddressID uint            `json:"shippingAddressId"`
	BillingAddressID  uint            `json:"billingAddressId"`
	Items             []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
