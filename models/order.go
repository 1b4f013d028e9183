package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is an immutable receipt. It records the client-supplied total and
// does not reference the purchased line items.
type Order struct {
	gorm.Model
	UserID      uint       `gorm:"not null" json:"userId"`
	TotalPrice  float64    `json:"totalPrice"`
	IsPaid      bool       `json:"isPaid"`
	PaidAt      *time.Time `json:"paidAt"`
	IsDelivered bool       `json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt"`
}
