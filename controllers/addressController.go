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

func CreateAddress(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	address.UserID = userID

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		// A user has at most one default shipping and one default
		// billing address.
		if address.IsDefaultShipping {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default_shipping", false).Error; err != nil {
				return err
			}
		}
		if address.IsDefaultBilling {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default_billing", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create address")
		return
	}

	ctx.JSON(http.StatusCreated, address)
}

func GetAddresses(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var addresses []models.Address
	if err := initializers.DB.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch addresses")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func GetAddress(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	addressId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return
	}

	var address models.Address
	if err := initializers.DB.Where("id = ? AND user_id = ?", addressId, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	ctx.JSON(http.StatusOK, address)
}

func UpdateAddress(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	addressId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return
	}

	var address models.Address
	if err := initializers.DB.Where("id = ? AND user_id = ?", addressId, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var body models.Address
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := map[string]any{
		"firstname":           body.Firstname,
		"lastname":            body.Lastname,
		"company":             body.Company,
		"phone":               body.Phone,
		"street":              body.Street,
		"city":                body.City,
		"state":               body.State,
		"zip_code":            body.ZipCode,
		"country":             body.Country,
		"is_default_shipping": body.IsDefaultShipping,
		"is_default_billing":  body.IsDefaultBilling,
	}

	if err := initializers.DB.Model(&address).Updates(updates).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update address")
		return
	}

	ctx.JSON(http.StatusOK, address)
}

func DeleteAddress(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	addressId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", addressId, userID).Delete(&models.Address{})
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully."})
}
