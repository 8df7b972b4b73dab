package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
	"github.com/stitchcart/ecommerce-api/services"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	AddressID  *string `json:"address_id"`
	CouponCode *string `json:"coupon_code"`
}

type UpdateShippingStatusRequest struct {
	ShippingStatus string `json:"shipping_status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB, svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "user_id = ?", c.GetString("user_id")).Error; err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers can place orders")
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		order, err := svc.PlaceOrder(&customer, services.PlaceOrderInput{
			AddressID:  req.AddressID,
			CouponCode: req.CouponCode,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCartEmpty),
				errors.Is(err, services.ErrInsufficientStock),
				errors.Is(err, services.ErrCouponNotLive),
				errors.Is(err, services.ErrAddressUnknown):
				response.Fail(c, http.StatusBadRequest, err.Error())
			default:
				response.Fail(c, http.StatusInternalServerError, "Failed to place order")
			}
			return
		}

		broadcastOrder(*order)

		response.Success(c, http.StatusCreated, "Order has been placed successful", order)
	}
}

// GET /api/orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "user_id = ?", c.GetString("user_id")).Error; err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have orders")
			return
		}

		var orders []models.Order
		err := db.Preload("Items").Preload("Address.Country").
			Where("customer_id = ?", customer.ID).
			Order("placed_at DESC").
			Find(&orders).Error
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		response.Success(c, http.StatusOK, "All orders has been fetched", orders)
	}
}

// GET /api/orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "user_id = ?", c.GetString("user_id")).Error; err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have orders")
			return
		}

		var order models.Order
		err := db.Preload("Items").Preload("Address.Country").
			First(&order, "id = ? AND customer_id = ?", c.Param("id"), customer.ID).Error
		if err != nil {
			response.Fail(c, http.StatusNotFound, "Order not found")
			return
		}

		response.Success(c, http.StatusOK, "The detail information about the order", order)
	}
}
