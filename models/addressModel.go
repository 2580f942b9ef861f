package models

import "gorm.io/gorm"

type Address struct {
	gorm.Model
	UserID            uint   `json:"userId" gorm:"index"`
	Firstname         string `json:"firstname" binding:"required"`
	Lastname          string `json:"lastname" binding:"required"`
	Company           string `json:"company"`
	Phone             string `json:"phone"`
	Street            string `json:"street" binding:"required"`
	City              string `json:"city" binding:"required"`
	State             string `json:"state"`
	ZipCode           string `json:"zipCode" binding:"required"`
	Country           string `json:"country" binding:"required"`
	IsDefaultShipping bool   `json:"isDefaultShipping"`
	IsDefaultBilling  bool   `json:"isDefaultBilling"`
}
