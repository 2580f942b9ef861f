package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Fullname               string    `json:"fullname"`
	Username               string    `json:"username" gorm:"uniqueIndex;size:64"`
	Email                  string    `json:"email" gorm:"uniqueIndex;size:255"`
	Phone                  string    `json:"phone"`
	Password               string    `json:"-"`
	Role                   string    `json:"role"`
	AccountActivated       bool      `json:"accountActivated"`
	AccountActivationToken string    `json:"-"`
	PasswordResetToken     string    `json:"-"`
	Addresses              []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type LoginData struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}
