package initializers

import (
	"log"

	"github.com/mouakos/ecommerce-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Tag{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.WishlistItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database synced successfully.")
}
