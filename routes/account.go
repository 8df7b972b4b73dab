package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	accountControllers "github.com/stitchcart/ecommerce-api/controllers/account"
	"github.com/stitchcart/ecommerce-api/middleware"
	"github.com/stitchcart/ecommerce-api/services"
)

// SetupAccountRoutes registers registration plus the JWT-protected
// profile, OTP and account-deletion endpoints.
func SetupAccountRoutes(r *gin.Engine, db *gorm.DB, accounts *services.AccountService) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", accountControllers.Register(accounts))
	}

	authed := r.Group("/api/auth")
	authed.Use(middleware.ValidateToken)
	{
		authed.POST("/otp", accountControllers.RequestOtp(accounts))
		authed.POST("/otp/verify", accountControllers.VerifyOtp(accounts))
	}

	user := r.Group("/api/user")
	user.Use(middleware.ValidateToken)
	{
		user.GET("/", accountControllers.GetUser(db))
		user.PUT("/", accountControllers.UpdateUser(db))
		user.DELETE("/customer", accountControllers.DeleteCustomer(accounts))
		user.DELETE("/seller", accountControllers.DeleteSeller(accounts))
	}
}
