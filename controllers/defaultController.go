package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Ecommerce API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/logout" - Revoke the current token
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

PRODUCT
- GET "/product" - Get all products
- GET "/product/:id" - Get product by ID (with average rating)
- POST "/product" - Create new product (admin)
- PUT "/product/:id" - Update product (admin)
- DELETE "/product/:id" - Delete product (admin)
- POST "/product-images" - Upload product images (admin)

CART
- GET "/cart" - Get your cart
- POST "/cart/items" - Add item to cart
- PUT "/cart/items/:itemId" - Update item quantity
- DELETE "/cart/items/:itemId" - Remove item from cart
- DELETE "/cart" - Clear cart

ORDER
- POST "/order/checkout" - Convert your cart into an order
- GET "/order" - Get your orders
- GET "/order/:orderId" - Get order by ID
- POST "/order/:orderId/cancel" - Cancel a pending or paid order
- GET "/admin/orders" - Get all orders (admin)
- PATCH "/admin/orders/:orderId" - Update order status (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
