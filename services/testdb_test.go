package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mouakos/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:         username,
		Email:            username + "@example.com",
		Password:         "hashed",
		Role:             "user",
		AccountActivated: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Slug:     name,
		SKU:      name + "-sku",
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	address := models.Address{
		UserID:    userID,
		Firstname: "Jane",
		Lastname:  "Doe",
		Street:    "1 Main St",
		City:      "Springfield",
		ZipCode:   "12345",
		Country:   "US",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func productStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.Stock
}
