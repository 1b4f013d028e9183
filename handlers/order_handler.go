package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopease/middleware"
	"shopease/models"
)

type createOrderRequest struct {
	UserID      uint       `json:"userId"`
	TotalPrice  float64    `json:"totalPrice"`
	IsPaid      bool       `json:"isPaid"`
	PaidAt      *time.Time `json:"paidAt"`
	IsDelivered bool       `json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt"`
}

// CreateOrderHandler records a checkout receipt. The total is taken from the
// client as-is and the order carries no linkage to cart line items; repeated
// submissions create separate orders.
func CreateOrderHandler(c *gin.Context, db *gorm.DB) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide userId"})
		return
	}

	order := models.Order{
		UserID:      req.UserID,
		TotalPrice:  req.TotalPrice,
		IsPaid:      req.IsPaid,
		PaidAt:      req.PaidAt,
		IsDelivered: req.IsDelivered,
		DeliveredAt: req.DeliveredAt,
	}
	if err := db.Create(&order).Error; err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully"})
}

// ListOrdersHandler returns the caller's own receipts, newest first.
func ListOrdersHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	orders := make([]models.Order, 0)
	err := db.Order("created_at DESC").Find(&orders, "user_id = ?", userID).Error
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}
