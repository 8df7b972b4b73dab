package productController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"name": "category name is required"})
			return
		}

		category := models.Category{Name: input.Name}
		if err := db.Create(&category).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create category")
			return
		}

		response.Success(c, http.StatusCreated, "Category has been added successful", category)
	}
}

// GET /api/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Preload("Products").Order("name").Find(&categories).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}

		response.Success(c, http.StatusOK, "All categories has been fetched", categories)
	}
}
