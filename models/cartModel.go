package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem holds the price the product had when it was added; the
// snapshot is deliberately insulated from later catalog price changes.
type CartItem struct {
	gorm.Model
	CartID    uint            `json:"cartId" gorm:"index:idx_cart_product,unique"`
	ProductID uint            `json:"productId" gorm:"index:idx_cart_product,unique"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
}

type Cart struct {
	gorm.Model
	UserID      uint            `json:"userId" gorm:"uniqueIndex"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2)"`
	Items       []CartItem      `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}
