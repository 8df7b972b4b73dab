package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/services"
)

// SetupRoutes is the single entry-point that wires up the public,
// account, store, order and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, accounts *services.AccountService, orders *services.OrderService, cache *services.RatingsCache) {
	SetupAccountRoutes(r, db, accounts)
	SetupStoreRoutes(r, db, cache)
	SetupOrderRoutes(r, db, orders)
	SetupAdminRoutes(r, db, cache)
}
