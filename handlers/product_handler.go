package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopease/models"
)

const (
	productCacheKey = "products"
	productCacheTTL = time.Hour
)

// ListProductsHandler serves the catalog, preferring the Redis copy. A cache
// miss or unmarshal failure falls back to the database and repopulates.
func ListProductsHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	if rdb != nil {
		cached, err := rdb.Get(c, productCacheKey).Result()
		if err == nil {
			var products []models.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				c.JSON(http.StatusOK, products)
				return
			}
		} else if err != redis.Nil {
			logrus.WithError(err).Warn("product cache read failed")
		}
	}

	products := make([]models.Product, 0)
	if err := db.Find(&products).Error; err != nil {
		storageError(c, err)
		return
	}

	if rdb != nil {
		if payload, err := json.Marshal(products); err == nil {
			if err := rdb.Set(c, productCacheKey, payload, productCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("product cache write failed")
			}
		}
	}

	c.JSON(http.StatusOK, products)
}

func invalidateProductCache(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(c, productCacheKey).Err(); err != nil {
		logrus.WithError(err).Warn("product cache invalidation failed")
	}
}

func GetProductHandler(c *gin.Context, db *gorm.DB) {
	var product models.Product
	err := db.First(&product, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProductsHandler matches on name and/or description; at least one
// parameter is required.
func SearchProductsHandler(c *gin.Context, db *gorm.DB) {
	productName := c.Query("productName")
	description := c.Query("description")

	if productName == "" && description == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide at least one search parameter",
		})
		return
	}

	query := db.Model(&models.Product{})
	if productName != "" {
		query = query.Where("name LIKE ?", "%"+productName+"%")
	}
	if description != "" {
		query = query.Where("description LIKE ?", "%"+description+"%")
	}

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func ListProductsByCategoryHandler(c *gin.Context, db *gorm.DB) {
	products := make([]models.Product, 0)
	err := db.Find(&products, "category_id = ?", c.Param("categoryId")).Error
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

type productRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Brand        string  `json:"brand"`
	CategoryID   uint    `json:"categoryId"`
	CountInStock uint    `json:"countInStock"`
	Rating       float64 `json:"rating"`
	NumReviews   uint    `json:"numReviews"`
	Image        string  `json:"image"`
}

func CreateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide product name"})
		return
	}

	product := models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Brand:        req.Brand,
		CategoryID:   req.CategoryID,
		CountInStock: req.CountInStock,
		Rating:       req.Rating,
		NumReviews:   req.NumReviews,
		ImageURL:     req.Image,
	}
	if err := db.Create(&product).Error; err != nil {
		storageError(c, err)
		return
	}

	invalidateProductCache(c, rdb)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProductHandler overwrites the full product record, matching the
// all-fields PUT contract.
func UpdateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide product name"})
		return
	}

	result := db.Model(&models.Product{}).
		Where("id = ?", c.Param("id")).
		Updates(map[string]interface{}{
			"name":           req.Name,
			"description":    req.Description,
			"price":          req.Price,
			"brand":          req.Brand,
			"category_id":    req.CategoryID,
			"count_in_stock": req.CountInStock,
			"rating":         req.Rating,
			"num_reviews":    req.NumReviews,
			"image_url":      req.Image,
		})
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	invalidateProductCache(c, rdb)
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

func DeleteProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	invalidateProductCache(c, rdb)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
