package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/mouakos/ecommerce-api/initializers"
	"github.com/mouakos/ecommerce-api/models"
	"gorm.io/gorm"
)

func CreateTag(ctx *gin.Context) {
	var tag models.Tag
	if err := ctx.ShouldBindJSON(&tag); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var existing models.Tag
	err := initializers.DB.Where("LOWER(name) = LOWER(?)", tag.Name).First(&existing).Error
	if err == nil {
		respondWithError(ctx, http.StatusConflict, "Tag with this name already exists", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check tag uniqueness", err)
		return
	}

	tag.Slug = slug.Make(tag.Name)

	if err := initializers.DB.Create(&tag).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create tag", err)
		return
	}

	ctx.JSON(http.StatusCreated, tag)
}

func GetTags(ctx *gin.Context) {
	var tags []models.Tag
	if err := initializers.DB.Order("name asc").Find(&tags).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch tags", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tags": tags})
}

func DeleteTag(ctx *gin.Context) {
	tagId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid tag ID", err)
		return
	}

	result := initializers.DB.Delete(&models.Tag{}, tagId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete tag", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Tag not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully."})
}
