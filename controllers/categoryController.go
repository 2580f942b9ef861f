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

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var existing models.Category
	err := initializers.DB.Where("LOWER(name) = LOWER(?)", category.Name).First(&existing).Error
	if err == nil {
		respondWithError(ctx, http.StatusConflict, "Category with this name already exists", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check category uniqueness", err)
		return
	}

	category.Slug = slug.Make(category.Name)

	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := initializers.DB.Order("name asc").Find(&categories).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func GetCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	var category models.Category
	if err := initializers.DB.Preload("Products").First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve category", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func UpdateCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve category", err)
		}
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates := map[string]any{}
	if body.Name != nil {
		updates["name"] = *body.Name
		updates["slug"] = slug.Make(*body.Name)
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if err := initializers.DB.Model(&category).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory refuses to delete a category that still has products.
func DeleteCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	var productCount int64
	if err := initializers.DB.Model(&models.Product{}).
		Where("category_id = ?", categoryId).
		Count(&productCount).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check category products", err)
		return
	}
	if productCount > 0 {
		respondWithError(ctx, http.StatusConflict, "Category has associated products and cannot be deleted", nil)
		return
	}

	result := initializers.DB.Delete(&models.Category{}, categoryId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
