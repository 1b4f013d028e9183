package models

import "gorm.io/gorm"

// Wishlist is the second per-user singleton collection; same shape as Cart
// minus item quantities.
type Wishlist struct {
	gorm.Model
	UserID        uint           `gorm:"uniqueIndex;not null" json:"userId"`
	WishlistItems []WishlistItem `gorm:"foreignKey:WishlistID" json:"wishlistItems,omitempty"`
}
