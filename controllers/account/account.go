package accountControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
	"github.com/stitchcart/ecommerce-api/services"
)

type UpdateUserInput struct {
	FullName       *string `json:"full_name"`
	PhoneNumber    *string `json:"phone_number"`
	Country        *string `json:"country"`
	Address        *string `json:"address"`
	ProfilePicture *string `json:"profile_picture"`
}

// POST /api/auth/register
func Register(svc *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CreateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		user, err := svc.CreateUser(input)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"email": err.Error()})
			case errors.Is(err, services.ErrEmailRequired),
				errors.Is(err, services.ErrInvalidEmail):
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"email": err.Error()})
			case errors.Is(err, services.ErrNameRequired):
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"full_name": err.Error()})
			case errors.Is(err, services.ErrPasswordShort):
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"password": err.Error()})
			default:
				response.Fail(c, http.StatusInternalServerError, "Failed to create account")
			}
			return
		}

		response.Success(c, http.StatusCreated, "Account has been created successful", user)
	}
}

// GET /api/user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		response.Success(c, http.StatusOK, "User profile has been fetched", user)
	}
}

// PUT /api/user
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.FullName != nil {
			updates["full_name"] = *input.FullName
		}
		if input.PhoneNumber != nil {
			updates["phone_number"] = *input.PhoneNumber
		}
		if input.Country != nil {
			updates["country"] = *input.Country
		}
		if input.Address != nil {
			updates["address"] = *input.Address
		}
		if input.ProfilePicture != nil {
			updates["profile_picture"] = *input.ProfilePicture
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				response.Fail(c, http.StatusInternalServerError, "Failed to update user")
				return
			}
		}

		response.Success(c, http.StatusOK, "User profile has been updated", user)
	}
}

// DELETE /api/user/customer
func DeleteCustomer(svc *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := svc.DeleteCustomerAccount(userID); err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to delete account")
			return
		}
		response.Success(c, http.StatusOK, "Customer account has been deleted", nil)
	}
}

// DELETE /api/user/seller
func DeleteSeller(svc *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := svc.DeleteSellerAccount(userID); err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to delete account")
			return
		}
		response.Success(c, http.StatusOK, "Seller account has been deleted", nil)
	}
}
