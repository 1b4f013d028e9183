package models

import "gorm.io/gorm"

// WishlistItem membership is boolean: one row per (wishlist, product).
type WishlistItem struct {
	gorm.Model
	WishlistID uint    `gorm:"uniqueIndex:idx_wishlist_product;not null" json:"wishlistId"`
	ProductID  uint    `gorm:"uniqueIndex:idx_wishlist_product;not null" json:"productId"`
	Product    Product `json:"product,omitempty"`
}
