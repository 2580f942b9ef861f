package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/models"
	"github.com/mouakos/ecommerce-api/services"
	"github.com/mouakos/ecommerce-api/utils"
)

type OrderController struct {
	orders     *services.OrderService
	webhookURL string
}

func NewOrderController(orders *services.OrderService, webhookURL string) *OrderController {
	return &OrderController{orders: orders, webhookURL: webhookURL}
}

// Checkout converts the authenticated user's cart into an order.
func (oc *OrderController) Checkout(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		ShippingAddressID uint  `json:"shippingAddressId" binding:"required"`
		BillingAddressID  *uint `json:"billingAddressId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := oc.orders.Checkout(userID, body.ShippingAddressID, body.BillingAddressID)
	middlewares.RecordCheckout(err == nil)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	oc.notify(order, "order.created")

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order created successfully.",
		"order":   order,
	})
}

func (oc *OrderController) GetMyOrders(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orders, err := oc.orders.ListUserOrders(userID)
	if err != nil {
		log.Println("Failed to fetch orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (oc *OrderController) GetOrderById(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := oc.orders.GetOrder(uint(orderID), userID, middlewares.IsAdmin(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func (oc *OrderController) GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	orders, count, err := oc.orders.ListOrders(limit, offset, ctx.Query("search"))
	if err != nil {
		log.Println("Failed to fetch orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	if !orderStatusData.Status.Valid() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := oc.orders.UpdateStatus(uint(orderID), orderStatusData.Status)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	oc.notify(order, "order."+string(order.Status))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
		"order":   order,
	})
}

func (oc *OrderController) CancelOrder(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := oc.orders.CancelOrder(uint(orderID), userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	oc.notify(order, "order.cancelled")

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order cancelled.",
		"order":   order,
	})
}

func (oc *OrderController) notify(order *models.Order, eventType string) {
	if oc.webhookURL == "" {
		return
	}
	payload := gin.H{
		"event":       eventType,
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
		"total":       order.TotalAmount,
	}
	if err := utils.NotifyWebhook(oc.webhookURL, payload); err != nil {
		log.Printf("Webhook notification failed for order %d: %v", order.ID, err)
	}
}
