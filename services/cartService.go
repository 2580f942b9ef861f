package services

import (
	"errors"

	"github.com/mouakos/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreateCart returns the user's cart, creating an empty one on
// first access. The unique index on carts.user_id makes concurrent
// creation safe: the loser of the race re-fetches the winner's row.
func (s *CartService) GetOrCreateCart(userID uint) (*models.Cart, error) {
	return getOrCreateCart(s.db, userID)
}

func getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID, TotalAmount: decimal.Zero}
	if createErr := db.Create(&cart).Error; createErr != nil {
		// Another request created the cart between our read and write.
		var existing models.Cart
		if fetchErr := db.Preload("Items").Where("user_id = ?", userID).First(&existing).Error; fetchErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &cart, nil
}

// AddItem puts quantity units of a product into the user's cart. If the
// product is already in the cart the line quantity is incremented
// instead of a second line being created. The stock check here is
// advisory: nothing is reserved until checkout.
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.CartItem, error) {
	var item *models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var existing models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&existing).Error
		switch {
		case err == nil:
			newQuantity := existing.Quantity + quantity
			if newQuantity > product.Stock {
				return &InsufficientStockError{ProductID: productID, Requested: newQuantity, Available: product.Stock}
			}
			existing.Quantity = newQuantity
			existing.Subtotal = existing.UnitPrice.Mul(decimal.NewFromInt(int64(newQuantity)))
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			item = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > product.Stock {
				return &InsufficientStockError{ProductID: productID, Requested: quantity, Available: product.Stock}
			}
			created := models.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.Price,
				Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(quantity))),
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			item = &created
		default:
			return err
		}

		return recalculateCartTotal(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem sets the quantity of a line in the user's cart.
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if quantity > product.Stock {
			return &InsufficientStockError{ProductID: product.ID, Requested: quantity, Available: product.Stock}
		}

		item.Quantity = quantity
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		return recalculateCartTotal(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a single line from the user's cart.
func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCartItemNotFound
		}

		return recalculateCartTotal(tx, cart.ID)
	})
}

// ClearCart removes every line but keeps the cart row itself.
func (s *CartService) ClearCart(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		return clearCartLines(tx, cart.ID)
	})
}

func clearCartLines(tx *gorm.DB, cartID uint) error {
	if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&models.Cart{}).Where("id = ?", cartID).
		Update("total_amount", decimal.Zero).Error
}

// recalculateCartTotal derives the cart total from the current lines.
// The total is never patched incrementally, so it cannot drift from the
// line subtotals.
func recalculateCartTotal(tx *gorm.DB, cartID uint) error {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return tx.Model(&models.Cart{}).Where("id = ?", cartID).
		Update("total_amount", total).Error
}
