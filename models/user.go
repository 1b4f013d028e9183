package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"fullname"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phoneNumber"`
}
