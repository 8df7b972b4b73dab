package addressControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

type CountryInput struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required,len=2"`
}

type AddressInput struct {
	CountryID           string `json:"country_id" binding:"required"`
	FirstName           string `json:"first_name" binding:"required"`
	LastName            string `json:"last_name" binding:"required"`
	StreetAddress       string `json:"street_address" binding:"required"`
	SecondStreetAddress string `json:"second_street_address"`
	City                string `json:"city" binding:"required"`
	State               string `json:"state" binding:"required"`
	ZipCode             string `json:"zip_code" binding:"required"`
	PhoneNumber         string `json:"phone_number" binding:"required"`
}

// GET /api/countries
func GetCountries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var countries []models.Country
		if err := db.Order("name").Find(&countries).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch countries")
			return
		}
		response.Success(c, http.StatusOK, "All countries has been fetched", countries)
	}
}

// POST /api/admin/countries
func CreateCountry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CountryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		country := models.Country{Name: input.Name, Code: strings.ToUpper(input.Code)}
		if err := db.Create(&country).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create country")
			return
		}
		response.Success(c, http.StatusCreated, "Country has been added successful", country)
	}
}

func customerFor(db *gorm.DB, userID string) (*models.Customer, error) {
	var customer models.Customer
	if err := db.First(&customer, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GET /api/addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := customerFor(db, c.GetString("user_id"))
		if err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have addresses")
			return
		}

		var addresses []models.Address
		err = db.Preload("Country").
			Where("customer_id = ?", customer.ID).
			Order("created_at DESC").
			Find(&addresses).Error
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch addresses")
			return
		}

		response.Success(c, http.StatusOK, "All addresses has been fetched", addresses)
	}
}

// POST /api/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := customerFor(db, c.GetString("user_id"))
		if err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have addresses")
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var country models.Country
		if err := db.First(&country, "id = ?", input.CountryID).Error; err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"country_id": "country does not exist"})
			return
		}

		address := models.Address{
			CustomerID:          customer.ID,
			CountryID:           input.CountryID,
			FirstName:           input.FirstName,
			LastName:            input.LastName,
			StreetAddress:       input.StreetAddress,
			SecondStreetAddress: input.SecondStreetAddress,
			City:                input.City,
			State:               input.State,
			ZipCode:             input.ZipCode,
			PhoneNumber:         input.PhoneNumber,
		}
		if err := db.Create(&address).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create address")
			return
		}
		address.Country = country

		response.Success(c, http.StatusCreated, "Address has been added successful", address)
	}
}

// DELETE /api/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := customerFor(db, c.GetString("user_id"))
		if err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have addresses")
			return
		}

		result := db.Where("id = ? AND customer_id = ?", c.Param("id"), customer.ID).Delete(&models.Address{})
		if result.Error != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to delete address")
			return
		}
		if result.RowsAffected == 0 {
			response.Fail(c, http.StatusNotFound, "Address not found")
			return
		}

		response.Success(c, http.StatusOK, "Address has been deleted", nil)
	}
}
