package services

import (
	"errors"

	"github.com/mouakos/ecommerce-api/models"
	"gorm.io/gorm"
)

// InventoryService is the only code path allowed to decrement product
// stock. Everything else treats stock as read-only.
type InventoryService struct{}

func NewInventoryService() *InventoryService {
	return &InventoryService{}
}

// Reserve decrements stock for a product if and only if enough is
// available. The check and the decrement are a single conditional
// UPDATE, so concurrent reservations for the last units cannot jointly
// drive stock below zero: the losing transaction simply affects no rows.
func (s *InventoryService) Reserve(tx *gorm.DB, productID uint, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var product models.Product
		if err := tx.Select("id", "stock").First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		return &InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Stock,
		}
	}
	return nil
}
