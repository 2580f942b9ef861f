package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/controllers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/tokenstore"
)

func CartRoutes(server *gin.Engine, cc *controllers.CartController, revoked *tokenstore.Store) {
	cart := server.Group("/cart", middlewares.RequireAuth(revoked))
	{
		cart.GET("", cc.GetCart)
		cart.POST("/items", cc.AddCartItem)
		cart.PUT("/items/:itemId", cc.UpdateCartItem)
		cart.DELETE("/items/:itemId", cc.RemoveCartItem)
		cart.DELETE("", cc.ClearCart)
	}
}
