package productController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

type SizeInput struct {
	Title string `json:"title" binding:"required"`
}

type ColourInput struct {
	Name    string `json:"name" binding:"required"`
	HexCode string `json:"hex_code" binding:"omitempty,len=7"`
}

type SizeInventoryInput struct {
	SizeID     string  `json:"size_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"gte=0"`
	ExtraPrice float64 `json:"extra_price" binding:"omitempty,gte=0"`
}

type ColourInventoryInput struct {
	ColourID   string  `json:"colour_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"gte=0"`
	ExtraPrice float64 `json:"extra_price" binding:"omitempty,gte=0"`
}

// POST /api/sizes
func CreateSize(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SizeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"title": "size title is required"})
			return
		}

		size := models.Size{Title: input.Title}
		if err := db.Create(&size).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create size")
			return
		}
		response.Success(c, http.StatusCreated, "Size has been added successful", size)
	}
}

// GET /api/sizes
func GetSizes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sizes []models.Size
		if err := db.Order("title").Find(&sizes).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch sizes")
			return
		}
		response.Success(c, http.StatusOK, "All sizes has been fetched", sizes)
	}
}

// POST /api/colours
func CreateColour(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ColourInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		colour := models.Colour{Name: input.Name, HexCode: input.HexCode}
		if err := db.Create(&colour).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create colour")
			return
		}
		response.Success(c, http.StatusCreated, "Colour has been added successful", colour)
	}
}

// GET /api/colours
func GetColours(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var colours []models.Colour
		if err := db.Order("name").Find(&colours).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch colours")
			return
		}
		response.Success(c, http.StatusOK, "All colours has been fetched", colours)
	}
}

// POST /api/products/:id/sizes
// Upserts the (product, size) inventory row.
func UpsertSizeInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		var input SizeInventoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var size models.Size
		if err := db.First(&size, "id = ?", input.SizeID).Error; err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"size_id": "size does not exist"})
			return
		}

		inv := models.SizeInventory{
			ProductID:  productID,
			SizeID:     input.SizeID,
			Quantity:   input.Quantity,
			ExtraPrice: input.ExtraPrice,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "size_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "extra_price"}),
		}).Create(&inv).Error
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to save size inventory")
			return
		}

		response.Success(c, http.StatusCreated, "Size inventory has been saved", inv)
	}
}

// POST /api/products/:id/colours
// Upserts the (product, colour) inventory row.
func UpsertColourInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		var input ColourInventoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var colour models.Colour
		if err := db.First(&colour, "id = ?", input.ColourID).Error; err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"colour_id": "colour does not exist"})
			return
		}

		inv := models.ColourInventory{
			ProductID:  productID,
			ColourID:   input.ColourID,
			Quantity:   input.Quantity,
			ExtraPrice: input.ExtraPrice,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "colour_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "extra_price"}),
		}).Create(&inv).Error
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to save colour inventory")
			return
		}

		response.Success(c, http.StatusCreated, "Colour inventory has been saved", inv)
	}
}
