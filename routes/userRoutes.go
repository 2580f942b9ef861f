package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/controllers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/tokenstore"
)

func UserRoutes(server *gin.Engine, revoked *tokenstore.Store) {
	account := server.Group("/account", middlewares.RequireAuth(revoked))
	{
		account.GET("", controllers.GetProfile)
		account.PUT("", controllers.UpdateProfile)
		account.PUT("/password", controllers.ChangePassword)

		account.GET("/addresses", controllers.GetAddresses)
		account.POST("/addresses", controllers.CreateAddress)
		account.GET("/addresses/:id", controllers.GetAddress)
		account.PUT("/addresses/:id", controllers.UpdateAddress)
		account.DELETE("/addresses/:id", controllers.DeleteAddress)

		account.GET("/wishlist", controllers.GetWishlist)
		account.POST("/wishlist", controllers.AddToWishlist)
		account.DELETE("/wishlist/:productId", controllers.RemoveFromWishlist)
	}

	reviews := server.Group("/review", middlewares.RequireAuth(revoked))
	{
		reviews.POST("", controllers.CreateReview)
		reviews.DELETE("/:id", controllers.DeleteReview)
	}

	server.GET("/admin/users", middlewares.RequireAuth(revoked), middlewares.RequireAdmin(), controllers.GetUsers)
}
