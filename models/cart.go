package models

import "gorm.io/gorm"

// Cart is a per-user singleton. The unique index on UserID is what keeps
// concurrent find-or-create calls from producing two carts for one user.
type Cart struct {
	gorm.Model
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`
	CartItems []CartItem `gorm:"foreignKey:CartID" json:"cartItems,omitempty"`
}
