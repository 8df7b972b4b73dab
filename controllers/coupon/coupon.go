package couponControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

type CouponInput struct {
	Code       string    `json:"code" binding:"omitempty,len=8"`
	Price      float64   `json:"price" binding:"required,gt=0"`
	ExpiryDate time.Time `json:"expiry_date" binding:"required"`
}

type ValidateCouponInput struct {
	Code string `json:"code" binding:"required"`
}

// POST /api/admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		coupon := models.CouponCode{
			Code:       strings.ToUpper(input.Code),
			Price:      input.Price,
			ExpiryDate: input.ExpiryDate,
		}
		if err := db.Create(&coupon).Error; err != nil {
			if errors.Is(err, models.ErrCouponExpiryPast) {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"expiry_date": err.Error()})
				return
			}
			response.Fail(c, http.StatusInternalServerError, "Failed to create coupon")
			return
		}

		response.Success(c, http.StatusCreated, "Coupon has been created successful", coupon)
	}
}

// GET /api/admin/coupons
func GetCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.CouponCode
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch coupons")
			return
		}

		// Overdue coupons get their flag flipped on read.
		now := time.Now()
		for i := range coupons {
			if _, err := coupons[i].MarkIfExpired(db, now); err != nil {
				log.Printf("failed to flag coupon %s expired: %v", coupons[i].Code, err)
			}
		}

		response.Success(c, http.StatusOK, "All coupons has been fetched", coupons)
	}
}

// POST /api/coupons/validate
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var coupon models.CouponCode
		err := db.First(&coupon, "code = ?", strings.ToUpper(input.Code)).Error
		if err != nil {
			response.Fail(c, http.StatusNotFound, "Coupon not found")
			return
		}

		now := time.Now()
		if _, err := coupon.MarkIfExpired(db, now); err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to validate coupon")
			return
		}
		if !coupon.IsLive(now) {
			response.Fail(c, http.StatusBadRequest, "Coupon code has expired")
			return
		}

		response.Success(c, http.StatusOK, "Coupon is valid", gin.H{
			"code":        coupon.Code,
			"price":       coupon.Price,
			"expiry_date": coupon.ExpiryDate,
		})
	}
}
