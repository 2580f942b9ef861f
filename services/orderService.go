package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/mouakos/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderEventPublisher receives order lifecycle notifications. Failures
// are logged, never surfaced to the caller: the order is already
// committed by the time events go out.
type OrderEventPublisher interface {
	PublishOrderEvent(orderID uint, orderNumber string, eventType string) error
}

type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
	publisher OrderEventPublisher
}

func NewOrderService(db *gorm.DB, inventory *InventoryService, publisher OrderEventPublisher) *OrderService {
	return &OrderService{db: db, inventory: inventory, publisher: publisher}
}

// Checkout converts the user's cart into an order. The whole operation
// runs in one transaction: every line is validated against current
// stock first, and only when all lines pass is any stock decremented,
// the order created and the cart cleared. Any failure after validation
// rolls everything back, leaving cart and inventory untouched.
//
// Unit prices are copied from the cart snapshot, not re-read from the
// catalog, so later price changes never affect an existing order.
func (s *OrderService) Checkout(userID, shippingAddressID uint, billingAddressID *uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		if err := verifyAddressOwnership(tx, shippingAddressID, userID); err != nil {
			return err
		}
		billingID := shippingAddressID
		if billingAddressID != nil {
			if err := verifyAddressOwnership(tx, *billingAddressID, userID); err != nil {
				return err
			}
			billingID = *billingAddressID
		}

		// Validate every line before touching any stock, so a failure
		// on the last line leaves the first lines undecremented.
		for _, item := range cart.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if product.Stock < item.Quantity {
				return &InsufficientStockError{
					ProductID: product.ID,
					Requested: item.Quantity,
					Available: product.Stock,
				}
			}
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			if err := s.inventory.Reserve(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  item.Subtotal,
			})
			total = total.Add(item.Subtotal)
		}

		order = models.Order{
			OrderNumber:       uuid.NewString(),
			UserID:            userID,
			Status:            models.OrderStatusPending,
			TotalAmount:       total,
			ShippingAddressID: shippingAddressID,
			BillingAddressID:  billingID,
			Items:             orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return clearCartLines(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publish(order.ID, order.OrderNumber, "order.created")
	return &order, nil
}

// GetOrder returns an order readable by the caller: owners see their own
// orders, admins see all of them.
func (s *OrderService) GetOrder(orderID, userID uint, isAdmin bool) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrNotOwner
	}
	return &order, nil
}

func (s *OrderService) ListUserOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) ListOrders(limit, offset int, search string) ([]models.Order, int64, error) {
	query := s.db.Preload("Items")
	countQuery := s.db.Model(&models.Order{})
	if search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
		countQuery = countQuery.Where("order_number LIKE ?", "%"+search+"%")
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	var count int64
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

// UpdateStatus moves an order along its lifecycle. Transitions outside
// the graph (pending → paid → shipped → delivered, cancellation from
// pending or paid) are rejected.
func (s *OrderService) UpdateStatus(orderID uint, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	changed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status == next {
			return nil
		}
		if !order.Status.CanTransitionTo(next) {
			return &InvalidStatusTransitionError{From: order.Status, To: next}
		}
		order.Status = next
		changed = true
		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.publish(order.ID, order.OrderNumber, "order."+string(order.Status))
	}
	return &order, nil
}

// CancelOrder lets a user cancel their own order while it is still
// pending or paid. Cancellation does not restock: no release operation
// exists in the ledger.
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	return s.UpdateStatus(orderID, models.OrderStatusCancelled)
}

func verifyAddressOwnership(tx *gorm.DB, addressID, userID uint) error {
	var address models.Address
	err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAddressNotFound
	}
	return err
}

func (s *OrderService) publish(orderID uint, orderNumber, eventType string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(orderID, orderNumber, eventType); err != nil {
		log.Printf("Failed to publish %s for order %d: %v", eventType, orderID, err)
	}
}
