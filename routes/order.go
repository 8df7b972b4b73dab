package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/stitchcart/ecommerce-api/controllers/cart"
	orderControllers "github.com/stitchcart/ecommerce-api/controllers/order"
	"github.com/stitchcart/ecommerce-api/middleware"
	"github.com/stitchcart/ecommerce-api/services"
)

// SetupOrderRoutes registers the JWT-protected cart and order endpoints
// plus the order websocket feed.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, orders *services.OrderService) {
	cart := r.Group("/api/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("/", cartControllers.GetCart(db))
		cart.POST("/", cartControllers.UpsertCartItem(db))
		cart.DELETE("/:item_id", cartControllers.DeleteCartItem(db))
		cart.DELETE("/", cartControllers.ClearCart(db))
	}

	group := r.Group("/api/orders")
	group.Use(middleware.ValidateToken)
	{
		group.POST("/", orderControllers.PlaceOrderHandler(db, orders))
		group.GET("/", orderControllers.GetOrders(db))
		group.GET("/:id", orderControllers.GetOrderByID(db))
	}

	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
}
