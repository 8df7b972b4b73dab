package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/stitchcart/ecommerce-api/controllers/address"
	adminControllers "github.com/stitchcart/ecommerce-api/controllers/admin"
	couponControllers "github.com/stitchcart/ecommerce-api/controllers/coupon"
	orderControllers "github.com/stitchcart/ecommerce-api/controllers/order"
	productController "github.com/stitchcart/ecommerce-api/controllers/product"
	"github.com/stitchcart/ecommerce-api/middleware"
	"github.com/stitchcart/ecommerce-api/services"
)

// SetupAdminRoutes registers the API-key-protected operator surface.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cache *services.RatingsCache) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/users", adminControllers.GetAllUsers(db))

		admin.GET("/orders", orderControllers.GetAllOrders(db))
		admin.PUT("/orders/:id/shipping-status", orderControllers.UpdateShippingStatus(db))
		admin.PUT("/orders/:id/payment-status", orderControllers.UpdatePaymentStatus(db))

		admin.GET("/products", productController.GetProducts(db, cache))
		admin.GET("/products/low-stock", adminControllers.GetLowStockProducts(db))
		admin.GET("/products/export", productController.ExportProductsToExcel(db))

		admin.GET("/coupons", couponControllers.GetCoupons(db))
		admin.POST("/coupons", couponControllers.CreateCoupon(db))

		admin.POST("/countries", addressControllers.CreateCountry(db))
	}
}
