package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopease/middleware"
	"shopease/models"
)

// findOrCreateWishlist mirrors findOrCreateCart for the second per-user
// singleton collection.
func findOrCreateWishlist(tx *gorm.DB, userID uint) (models.Wishlist, error) {
	var wishlist models.Wishlist
	err := tx.First(&wishlist, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wishlist = models.Wishlist{UserID: userID}
		if err := tx.Create(&wishlist).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				err = tx.First(&wishlist, "user_id = ?", userID).Error
			}
			return wishlist, err
		}
		return wishlist, nil
	}
	return wishlist, err
}

type wishlistProductRequest struct {
	ProductID uint `json:"productId"`
}

// AddToWishlistHandler records membership. Adding a product that is already
// on the wishlist is a no-op, not a duplicate row.
func AddToWishlistHandler(c *gin.Context, db *gorm.DB) {
	var req wishlistProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide productId"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		wishlist, err := findOrCreateWishlist(tx, userID)
		if err != nil {
			return err
		}

		item := models.WishlistItem{
			WishlistID: wishlist.ID,
			ProductID:  req.ProductID,
		}
		err = tx.First(&models.WishlistItem{}, "wishlist_id = ? AND product_id = ?", wishlist.ID, req.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&item).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			return nil
		}
		return err
	})
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product added to wishlist"})
}

// RemoveFromWishlistHandler deletes one membership row; 404 when the user
// has no wishlist or the product is not on it.
func RemoveFromWishlistHandler(c *gin.Context, db *gorm.DB) {
	var req wishlistProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide productId"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	var wishlist models.Wishlist
	err := db.First(&wishlist, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist not found"})
			return
		}
		storageError(c, err)
		return
	}

	// Hard delete, matching RemoveFromCartHandler: the membership row must
	// release the (wishlist_id, product_id) unique index.
	result := db.Unscoped().
		Where("wishlist_id = ? AND product_id = ?", wishlist.ID, req.ProductID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}

type wishlistItemRow struct {
	WishlistID    uint    `json:"wishlistId"`
	ProductID     uint    `json:"productId"`
	ProductName   string  `json:"productName"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"imageUrl"`
	StockQuantity uint    `json:"stockQuantity"`
}

func GetWishlistHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	rows := make([]wishlistItemRow, 0)
	err := db.Table("wishlist_items").
		Select("wishlists.id AS wishlist_id, products.id AS product_id, products.name AS product_name, products.description, products.price, products.image_url, products.count_in_stock AS stock_quantity").
		Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
		Joins("JOIN products ON products.id = wishlist_items.product_id").
		Where("wishlists.user_id = ?", userID).
		Where("wishlist_items.deleted_at IS NULL AND wishlists.deleted_at IS NULL AND products.deleted_at IS NULL").
		Scan(&rows).
		Error
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// CheckWishlistHandler reports membership for rendering toggle state. A user
// with no wishlist is simply "not a member" — no wishlist is created as a
// side effect of asking.
func CheckWishlistHandler(c *gin.Context, db *gorm.DB) {
	productIDParam := c.Query("productId")
	productID, err := strconv.ParseUint(productIDParam, 10, 32)
	if productIDParam == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide productId"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	var wishlist models.Wishlist
	err = db.First(&wishlist, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"isInWishlist": false})
			return
		}
		storageError(c, err)
		return
	}

	var count int64
	err = db.Model(&models.WishlistItem{}).
		Where("wishlist_id = ? AND product_id = ?", wishlist.ID, uint(productID)).
		Count(&count).
		Error
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isInWishlist": count > 0})
}
