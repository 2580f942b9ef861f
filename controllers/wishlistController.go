package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/initializers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/models"
	"gorm.io/gorm"
)

func AddToWishlist(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, body.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var existing models.WishlistItem
	err := initializers.DB.Where("user_id = ? AND product_id = ?", userID, body.ProductID).First(&existing).Error
	if err == nil {
		sendErrorResponse(ctx, http.StatusConflict, "Product already in wishlist")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	item := models.WishlistItem{UserID: userID, ProductID: body.ProductID}
	if err := initializers.DB.Create(&item).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add product to wishlist")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Product added to wishlist", "item": item})
}

func GetWishlist(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var items []models.WishlistItem
	if err := initializers.DB.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch wishlist")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"wishlist": items})
}

func RemoveFromWishlist(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result := initializers.DB.
		Where("user_id = ? AND product_id = ?", userID, productId).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove product from wishlist")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found in wishlist")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}
