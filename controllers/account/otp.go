package accountControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/services"
)

type VerifyOtpInput struct {
	Code int `json:"code" binding:"required"`
}

// POST /api/auth/otp
// Issues a fresh verification code. Delivery (email) is handled by an
// external worker; the code is returned here only for the caller's own
// channel.
func RequestOtp(svc *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		otp, err := svc.IssueOtp(userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				response.Fail(c, http.StatusNotFound, "User not found")
				return
			}
			response.Fail(c, http.StatusInternalServerError, "Failed to issue verification code")
			return
		}

		response.Success(c, http.StatusCreated, "A verification code has been issued", gin.H{
			"expiry_date": otp.ExpiryDate,
		})
	}
}

// POST /api/auth/otp/verify
func VerifyOtp(svc *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input VerifyOtpInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if err := svc.VerifyOtp(userID, input.Code); err != nil {
			switch {
			case errors.Is(err, services.ErrOtpExpired):
				response.Fail(c, http.StatusBadRequest, "The verification code has expired")
			case errors.Is(err, services.ErrOtpInvalid):
				response.Fail(c, http.StatusBadRequest, "Invalid verification code")
			default:
				response.Fail(c, http.StatusInternalServerError, "Failed to verify code")
			}
			return
		}

		response.Success(c, http.StatusOK, "Your account has been verified", nil)
	}
}
