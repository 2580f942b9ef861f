package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/controllers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/tokenstore"
)

func ProductRoutes(server *gin.Engine, revoked *tokenstore.Store) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)
	server.GET("/product/:id/reviews", controllers.GetProductReviews)

	admin := server.Group("/", middlewares.RequireAuth(revoked), middlewares.RequireAdmin())
	{
		admin.POST("/product", controllers.CreateProduct)
		admin.PUT("/product/:id", controllers.UpdateProduct)
		admin.DELETE("/product/:id", controllers.DeleteProduct)
		admin.POST("/product-images", controllers.UploadProductImages)
	}
}

func CategoryRoutes(server *gin.Engine, revoked *tokenstore.Store) {
	server.GET("/category", controllers.GetCategories)
	server.GET("/category/:id", controllers.GetCategory)
	server.GET("/tag", controllers.GetTags)

	admin := server.Group("/", middlewares.RequireAuth(revoked), middlewares.RequireAdmin())
	{
		admin.POST("/category", controllers.CreateCategory)
		admin.PUT("/category/:id", controllers.UpdateCategory)
		admin.DELETE("/category/:id", controllers.DeleteCategory)
		admin.POST("/tag", controllers.CreateTag)
		admin.DELETE("/tag/:id", controllers.DeleteTag)
	}
}
