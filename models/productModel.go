package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string    `json:"name" binding:"required" gorm:"uniqueIndex;size:128"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:160"`
	Description string    `json:"description"`
	Products    []Product `json:"-" gorm:"foreignKey:CategoryID"`
}

type Tag struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"uniqueIndex;size:64"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:80"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID uint   `json:"productId"`
}

type Product struct {
	gorm.Model
	Name        string          `json:"name" binding:"required" gorm:"uniqueIndex;size:255"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;size:280"`
	SKU         string          `json:"sku" binding:"required" gorm:"uniqueIndex;size:64;column:sku"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"isActive" gorm:"default:true"`
	Attributes  datatypes.JSON  `json:"attributes"`
	CategoryID  *uint           `json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
	Tags        []Tag           `json:"tags,omitempty" gorm:"many2many:product_tags;"`
	Images      []ProductImage  `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews     []Review        `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
