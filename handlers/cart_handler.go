package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopease/middleware"
	"shopease/models"
)

// findOrCreateCart resolves the caller's singleton cart, creating it on
// first use. Two concurrent creators race; the unique index on user_id
// rejects the loser, which then reads the winner's row.
func findOrCreateCart(tx *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := tx.First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := tx.Create(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				err = tx.First(&cart, "user_id = ?", userID).Error
			}
			return cart, err
		}
		return cart, nil
	}
	return cart, err
}

type addToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

// AddToCartHandler upserts a line item: a product already in the cart has
// its quantity incremented, never a second row inserted. The whole
// read-decide-write sequence runs in one transaction.
func AddToCartHandler(c *gin.Context, db *gorm.DB) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide productId and quantity",
		})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		cart, err := findOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.First(&item, "cart_id = ? AND product_id = ?", cart.ID, req.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// A concurrent add won the insert; fold ours into it.
					return incrementCartItem(tx, cart.ID, req.ProductID, req.Quantity)
				}
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}
		return incrementCartItem(tx, cart.ID, req.ProductID, req.Quantity)
	})
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
}

func incrementCartItem(tx *gorm.DB, cartID, productID, quantity uint) error {
	return tx.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).
		Error
}

type cartItemRow struct {
	CartItemID  uint    `json:"cartItemId"`
	Quantity    uint    `json:"quantity"`
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

// GetCartHandler returns the caller's cart joined with product display
// fields. A user with no cart gets an empty array, not an error.
func GetCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	rows := make([]cartItemRow, 0)
	err := db.Table("cart_items").
		Select("cart_items.id AS cart_item_id, cart_items.quantity, products.id AS product_id, products.name AS product_name, products.price, products.image_url").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("carts.user_id = ?", userID).
		Where("cart_items.deleted_at IS NULL AND carts.deleted_at IS NULL AND products.deleted_at IS NULL").
		Scan(&rows).
		Error
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

type updateCartItemRequest struct {
	CartItemID uint `json:"cartItemId"`
	Quantity   uint `json:"quantity"`
}

// UpdateCartItemHandler sets a line item quantity. The item must belong to
// the caller's cart; a foreign or unknown id answers 404 so existence is
// not leaked.
func UpdateCartItemHandler(c *gin.Context, db *gorm.DB) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CartItemID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide cartItemId and quantity",
		})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	ownedCarts := db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)
	result := db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id IN (?)", req.CartItemID, ownedCarts).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item quantity updated"})
}

type removeFromCartRequest struct {
	ProductID uint `json:"productId"`
}

// RemoveFromCartHandler deletes exactly one line item. "No cart" and "not
// in cart" are both 404 but with distinct messages.
func RemoveFromCartHandler(c *gin.Context, db *gorm.DB) {
	var req removeFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide productId"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	var cart models.Cart
	err := db.First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Shopping cart not found"})
			return
		}
		storageError(c, err)
		return
	}

	// Hard delete: a soft-deleted row would keep holding the
	// (cart_id, product_id) unique index and block a later re-add.
	result := db.Unscoped().
		Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
}

// The remaining handlers are the admin-style cart endpoints: raw CRUD over
// carts and cart items without the per-user upsert semantics.

func ListCartsHandler(c *gin.Context, db *gorm.DB) {
	var carts []models.Cart
	if err := db.Find(&carts).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func GetCartByUserHandler(c *gin.Context, db *gorm.DB) {
	var cart models.Cart
	err := db.First(&cart, "user_id = ?", c.Param("userId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Shopping cart not found"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type createCartRequest struct {
	UserID uint `json:"userId"`
}

func CreateCartHandler(c *gin.Context, db *gorm.DB) {
	var req createCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide userId"})
		return
	}

	cart := models.Cart{UserID: req.UserID}
	if err := db.Create(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "User already has a shopping cart"})
			return
		}
		storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Shopping cart created successfully"})
}

// DeleteCartByUserHandler is the admin-style bulk delete: the cart and all
// of its line items go together.
func DeleteCartByUserHandler(c *gin.Context, db *gorm.DB) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "user_id = ?", c.Param("userId")).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		// Hard delete so the user_id unique index is freed for a new cart.
		return tx.Unscoped().Delete(&cart).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Shopping cart not found"})
			return
		}
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping cart deleted successfully"})
}

func GetCartItemsHandler(c *gin.Context, db *gorm.DB) {
	var items []models.CartItem
	if err := db.Find(&items, "cart_id = ?", c.Param("cartId")).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type createCartItemRequest struct {
	CartID    uint `json:"cartId"`
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

func CreateCartItemHandler(c *gin.Context, db *gorm.DB) {
	var req createCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CartID == 0 || req.ProductID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide cartId, productId and quantity",
		})
		return
	}

	item := models.CartItem{
		CartID:    req.CartID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Product is already in the cart"})
			return
		}
		storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart successfully"})
}

type updateCartItemByIDRequest struct {
	Quantity uint `json:"quantity"`
}

func UpdateCartItemByIDHandler(c *gin.Context, db *gorm.DB) {
	var req updateCartItemByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide quantity"})
		return
	}

	result := db.Model(&models.CartItem{}).
		Where("id = ?", c.Param("cartItemId")).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated successfully"})
}

func DeleteCartItemByIDHandler(c *gin.Context, db *gorm.DB) {
	result := db.Unscoped().Delete(&models.CartItem{}, "id = ?", c.Param("cartItemId"))
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted successfully"})
}
