package productController

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
	"github.com/stitchcart/ecommerce-api/services"
)

type ReviewInput struct {
	Rating      int    `json:"rating" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// POST /api/products/:id/reviews
func CreateReview(db *gorm.DB, cache *services.RatingsCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var customer models.Customer
		if err := db.First(&customer, "user_id = ?", userID).Error; err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers can review products")
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if input.Rating < models.MinRating || input.Rating > models.MaxRating {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{
				"rating": fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating),
			})
			return
		}

		review := models.ProductReview{
			CustomerID:  customer.ID,
			ProductID:   product.ID,
			Rating:      input.Rating,
			Description: input.Description,
		}
		if err := db.Create(&review).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create review")
			return
		}

		cache.Invalidate(c.Request.Context(), product.ID)

		response.Success(c, http.StatusCreated, "Review has been added successful", review)
	}
}

// GET /api/products/:id/reviews
func GetReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		var reviews []models.ProductReview
		err := db.Preload("Images").
			Where("product_id = ?", product.ID).
			Order("created_at DESC").
			Find(&reviews).Error
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}

		response.Success(c, http.StatusOK, "All reviews has been fetched", reviews)
	}
}
