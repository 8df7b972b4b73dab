package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

// PUT /api/admin/orders/:id/shipping-status
func UpdateShippingStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateShippingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		status, err := models.ParseShippingStatus(req.ShippingStatus)
		if err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"shipping_status": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Order not found")
			return
		}

		if err := db.Model(&order).Update("shipping_status", status).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to update order")
			return
		}
		order.ShippingStatus = status
		broadcastOrder(order)

		response.Success(c, http.StatusOK, "Order shipping status has been updated", order)
	}
}

// PUT /api/admin/orders/:id/payment-status
func UpdatePaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		status, err := models.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"payment_status": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Order not found")
			return
		}

		if err := db.Model(&order).Update("payment_status", status).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to update order")
			return
		}
		order.PaymentStatus = status
		broadcastOrder(order)

		response.Success(c, http.StatusOK, "Order payment status has been updated", order)
	}
}

// GET /api/admin/orders
// Optional filters: ?payment_status=, ?shipping_status=.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Items")
		if s := c.Query("payment_status"); s != "" {
			status, err := models.ParsePaymentStatus(s)
			if err != nil {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"payment_status": err.Error()})
				return
			}
			q = q.Where("payment_status = ?", status)
		}
		if s := c.Query("shipping_status"); s != "" {
			status, err := models.ParseShippingStatus(s)
			if err != nil {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"shipping_status": err.Error()})
				return
			}
			q = q.Where("shipping_status = ?", status)
		}

		var orders []models.Order
		if err := q.Order("placed_at DESC").Find(&orders).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		response.Success(c, http.StatusOK, "All orders has been fetched", orders)
	}
}
