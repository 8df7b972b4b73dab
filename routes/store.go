package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/stitchcart/ecommerce-api/controllers/address"
	couponControllers "github.com/stitchcart/ecommerce-api/controllers/coupon"
	productController "github.com/stitchcart/ecommerce-api/controllers/product"
	"github.com/stitchcart/ecommerce-api/middleware"
	"github.com/stitchcart/ecommerce-api/services"
)

// SetupStoreRoutes registers the catalog browse endpoints (public) and
// the JWT-protected catalog-management, review and address endpoints.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB, cache *services.RatingsCache) {
	api := r.Group("/api")
	{
		api.GET("/categories", productController.GetCategories(db))
		api.GET("/products", productController.GetProducts(db, cache))
		api.GET("/products/:id", productController.GetProductByID(db, cache))
		api.GET("/products/:id/reviews", productController.GetReviews(db))
		api.GET("/sizes", productController.GetSizes(db))
		api.GET("/colours", productController.GetColours(db))
		api.GET("/countries", addressControllers.GetCountries(db))
		api.POST("/coupons/validate", couponControllers.ValidateCoupon(db))
	}

	authed := r.Group("/api")
	authed.Use(middleware.ValidateToken)
	{
		authed.POST("/categories", productController.CreateCategory(db))
		authed.POST("/products", productController.CreateProduct(db))
		authed.PUT("/products/:id", productController.UpdateProduct(db, cache))
		authed.DELETE("/products/:id", productController.DeleteProduct(db))
		authed.POST("/products/:id/images", productController.UploadProductImage(db))
		authed.POST("/products/:id/sizes", productController.UpsertSizeInventory(db))
		authed.POST("/products/:id/colours", productController.UpsertColourInventory(db))
		authed.POST("/sizes", productController.CreateSize(db))
		authed.POST("/colours", productController.CreateColour(db))

		authed.POST("/products/:id/reviews", productController.CreateReview(db, cache))
		authed.POST("/reviews/:id/images", productController.UploadReviewImage(db))

		authed.GET("/addresses", addressControllers.GetAddresses(db))
		authed.POST("/addresses", addressControllers.CreateAddress(db))
		authed.DELETE("/addresses/:id", addressControllers.DeleteAddress(db))
	}
}
