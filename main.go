package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/config"
	"github.com/mouakos/ecommerce-api/controllers"
	"github.com/mouakos/ecommerce-api/events"
	"github.com/mouakos/ecommerce-api/initializers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/routes"
	"github.com/mouakos/ecommerce-api/services"
	"github.com/mouakos/ecommerce-api/tokenstore"
)

func main() {
	initializers.LoadEnv()
	cfg := config.Load()
	initializers.ConnectToDB(cfg)
	initializers.SyncDatabase()

	revoked := tokenstore.New(10 * time.Minute)
	defer revoked.Close()

	var publisher services.OrderEventPublisher
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewPublisher(cfg)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: ", err)
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	inventory := services.NewInventoryService()
	carts := services.NewCartService(initializers.DB)
	orders := services.NewOrderService(initializers.DB, inventory, publisher)

	authController := controllers.NewAuthController(revoked, time.Duration(cfg.TokenLifetime)*time.Hour)
	cartController := controllers.NewCartController(carts)
	orderController := controllers.NewOrderController(orders, cfg.OrderWebhookURL)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.PrometheusMiddleware())

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, authController, revoked)
	routes.ProductRoutes(server, revoked)
	routes.CategoryRoutes(server, revoked)
	routes.UserRoutes(server, revoked)
	routes.CartRoutes(server, cartController, revoked)
	routes.OrderRoutes(server, orderController, revoked)

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
