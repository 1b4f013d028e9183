package models

import "gorm.io/gorm"

// CartItem holds one row per (cart, product); duplicate adds increment
// Quantity instead of inserting a second row.
type CartItem struct {
	gorm.Model
	CartID    uint    `gorm:"uniqueIndex:idx_cart_product;not null" json:"cartId"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_product;not null" json:"productId"`
	Product   Product `json:"product,omitempty"`
	Quantity  uint    `gorm:"not null" json:"quantity"`
}
