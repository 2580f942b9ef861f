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

// CreateReview adds a review for a product; a user may review a product
// only once.
func CreateReview(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		ProductID uint   `json:"productId" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment"`
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

	var existing models.Review
	err := initializers.DB.Where("user_id = ? AND product_id = ?", userID, body.ProductID).First(&existing).Error
	if err == nil {
		sendErrorResponse(ctx, http.StatusConflict, "You have already reviewed this product")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	review := models.Review{
		ProductID: body.ProductID,
		UserID:    userID,
		Rating:    body.Rating,
		Comment:   body.Comment,
	}
	if err := initializers.DB.Create(&review).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create review")
		return
	}

	ctx.JSON(http.StatusCreated, review)
}

func GetProductReviews(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var reviews []models.Review
	if err := initializers.DB.
		Where("product_id = ?", productId).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch reviews")
		return
	}

	var averageRating float64
	initializers.DB.Model(&models.Review{}).
		Where("product_id = ?", productId).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&averageRating)

	ctx.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": averageRating,
	})
}

func DeleteReview(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	reviewId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	query := initializers.DB.Where("id = ?", reviewId)
	if !middlewares.IsAdmin(ctx) {
		query = query.Where("user_id = ?", userID)
	}

	result := query.Delete(&models.Review{})
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully."})
}
