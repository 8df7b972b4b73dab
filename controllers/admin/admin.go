package adminControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

// GET /api/admin/users
// Optional ?search= matches email or full name.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Select("id", "email", "full_name", "phone_number", "country", "is_customer", "is_verified", "created_at")
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			q = q.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
		}

		var users []models.User
		if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		response.Success(c, http.StatusOK, "All users has been fetched", users)
	}
}

// GET /api/admin/products/low-stock
// Lists products whose total or variant stock sits below the threshold
// (default 20), the operator's restock worklist.
func GetLowStockProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := 20
		if raw := c.Query("low_stock"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"low_stock": "must be a non-negative integer"})
				return
			}
			threshold = n
		}

		var products []models.Product
		err := db.Preload("SizeInventory.Size").Preload("ColourInventory.Colour").
			Where(
				"inventory < ? OR id IN (?) OR id IN (?)",
				threshold,
				db.Model(&models.SizeInventory{}).Select("product_id").Where("quantity < ?", threshold),
				db.Model(&models.ColourInventory{}).Select("product_id").Where("quantity < ?", threshold),
			).
			Order("inventory").
			Find(&products).Error
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		response.Success(c, http.StatusOK, "Low stock products has been fetched", products)
	}
}
