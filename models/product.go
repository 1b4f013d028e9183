package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `json:"description"`
	Price        float64 `gorm:"not null" json:"price"`
	Brand        string  `json:"brand"`
	CategoryID   uint    `json:"categoryId"`
	CountInStock uint    `json:"countInStock"`
	Rating       float64 `json:"rating"`
	NumReviews   uint    `json:"numReviews"`
	ImageURL     string  `json:"image"`
}
