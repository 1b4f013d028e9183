package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `gorm:"not null" json:"categoryName"`
	Description string `json:"description"`
}
