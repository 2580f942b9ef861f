package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/initializers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/models"
	"gorm.io/gorm"
)

func GetProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if err := initializers.DB.Preload("Addresses").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func UpdateProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		Fullname *string `json:"fullname"`
		Phone    *string `json:"phone"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if body.Fullname != nil {
		updates["fullname"] = *body.Fullname
	}
	if body.Phone != nil {
		updates["phone"] = *body.Phone
	}

	if err := initializers.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		log.Println("Profile update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully."})
}

func ChangePassword(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	if err := comparePasswords(user.Password, body.CurrentPassword); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hashedPassword, err := hashPassword(body.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if err := initializers.DB.Model(&user).Update("password", hashedPassword).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to change password")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

func GetUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	var users []models.User
	if err := initializers.DB.Order("created_at desc").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch users")
		return
	}

	var count int64
	initializers.DB.Model(&models.User{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"users": users,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}
