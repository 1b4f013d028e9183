package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopease/models"
)

func ListCategoriesHandler(c *gin.Context, db *gorm.DB) {
	categories := make([]models.Category, 0)
	if err := db.Find(&categories).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func GetCategoryHandler(c *gin.Context, db *gorm.DB) {
	var category models.Category
	err := db.First(&category, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

type categoryRequest struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

func CreateCategoryHandler(c *gin.Context, db *gorm.DB) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CategoryName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide categoryName"})
		return
	}

	category := models.Category{
		Name:        req.CategoryName,
		Description: req.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

func UpdateCategoryHandler(c *gin.Context, db *gorm.DB) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CategoryName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide categoryName"})
		return
	}

	result := db.Model(&models.Category{}).
		Where("id = ?", c.Param("id")).
		Updates(map[string]interface{}{
			"name":        req.CategoryName,
			"description": req.Description,
		})
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func DeleteCategoryHandler(c *gin.Context, db *gorm.DB) {
	result := db.Delete(&models.Category{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
