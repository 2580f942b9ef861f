package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/controllers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/tokenstore"
)

func OrderRoutes(server *gin.Engine, oc *controllers.OrderController, revoked *tokenstore.Store) {
	order := server.Group("/order", middlewares.RequireAuth(revoked))
	{
		order.POST("/checkout", oc.Checkout)
		order.GET("", oc.GetMyOrders)
		order.GET("/:orderId", oc.GetOrderById)
		order.POST("/:orderId/cancel", oc.CancelOrder)
	}

	admin := server.Group("/admin/orders", middlewares.RequireAuth(revoked), middlewares.RequireAdmin())
	{
		admin.GET("", oc.GetOrders)
		admin.PATCH("/:orderId", oc.UpdateOrderStatus)
	}
}
