package productController

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
	"github.com/stitchcart/ecommerce-api/services"
)

type ProductInput struct {
	SellerID           string     `json:"seller_id" binding:"required"`
	Title              string     `json:"title" binding:"required"`
	CategoryID         *string    `json:"category_id"`
	Description        string     `json:"description"`
	Style              string     `json:"style"`
	Price              float64    `json:"price" binding:"required,gt=0"`
	ShippingFee        float64    `json:"shipping_fee" binding:"omitempty,gte=0"`
	ShippingOutDays    int        `json:"shipping_out_days" binding:"omitempty,gte=0"`
	PercentageOff      int        `json:"percentage_off" binding:"omitempty,gte=0,lte=100"`
	Inventory          int        `json:"inventory" binding:"omitempty,gte=0"`
	FlashSaleStartDate *time.Time `json:"flash_sale_start_date"`
	FlashSaleEndDate   *time.Time `json:"flash_sale_end_date"`
	FeaturedProduct    bool       `json:"featured_product"`
}

type UpdateProductInput struct {
	Title              *string    `json:"title"`
	CategoryID         *string    `json:"category_id"`
	Description        *string    `json:"description"`
	Style              *string    `json:"style"`
	Price              *float64   `json:"price"`
	ShippingFee        *float64   `json:"shipping_fee"`
	ShippingOutDays    *int       `json:"shipping_out_days"`
	PercentageOff      *int       `json:"percentage_off"`
	Inventory          *int       `json:"inventory"`
	FlashSaleStartDate *time.Time `json:"flash_sale_start_date"`
	FlashSaleEndDate   *time.Time `json:"flash_sale_end_date"`
	FeaturedProduct    *bool      `json:"featured_product"`
}

// ProductPayload adds the derived values to the wire representation.
type ProductPayload struct {
	models.Product
	DiscountPrice  float64 `json:"discount_price"`
	AverageRatings float64 `json:"average_ratings"`
}

func payload(c *gin.Context, db *gorm.DB, cache *services.RatingsCache, p models.Product) ProductPayload {
	avg := cache.AverageRatings(c.Request.Context(), p.ID, func() float64 {
		return p.AverageRatings(db)
	})
	return ProductPayload{
		Product:        p,
		DiscountPrice:  p.DiscountPrice(),
		AverageRatings: avg,
	}
}

// POST /api/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var seller models.Seller
		if err := db.First(&seller, "id = ?", input.SellerID).Error; err != nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"seller_id": "seller does not exist"})
			return
		}

		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"category_id": "category does not exist"})
				return
			}
		}

		// Distinct titles can collapse to the same slug ("A B" vs "A-B"),
		// so the check runs on the derived slug, not the raw title.
		var existing models.Product
		if err := db.Select("id").First(&existing, "slug = ?", models.Slugify(input.Title)).Error; err == nil {
			response.FieldErrors(c, http.StatusBadRequest, map[string]string{"title": "a product with an equivalent title already exists"})
			return
		}

		product := models.Product{
			SellerID:           input.SellerID,
			Title:              input.Title,
			CategoryID:         input.CategoryID,
			Description:        input.Description,
			Style:              input.Style,
			Price:              input.Price,
			ShippingFee:        input.ShippingFee,
			ShippingOutDays:    input.ShippingOutDays,
			PercentageOff:      input.PercentageOff,
			Inventory:          input.Inventory,
			FlashSaleStartDate: input.FlashSaleStartDate,
			FlashSaleEndDate:   input.FlashSaleEndDate,
			FeaturedProduct:    input.FeaturedProduct,
		}

		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate") {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"title": "a product with this title already exists"})
				return
			}
			response.Fail(c, http.StatusInternalServerError, "Failed to create product")
			return
		}

		response.Success(c, http.StatusCreated, "Product has been added successful", product)
	}
}

// GET /api/products
// Filters: ?category=<id>, ?featured=true, ?flash_sale=true. Storefront
// callers see available products only; operators pass ?all=true for the
// unfiltered listing.
func GetProducts(db *gorm.DB, cache *services.RatingsCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db
		if category := c.Query("category"); category != "" {
			q = q.Where("category_id = ?", category)
		}
		if c.Query("featured") == "true" {
			q = q.Where("featured_product = ?", true)
		}
		if c.Query("flash_sale") == "true" {
			now := time.Now()
			q = q.Where("flash_sale_start_date <= ? AND flash_sale_end_date >= ?", now, now)
		}

		var (
			products []models.Product
			err      error
		)
		if c.Query("all") == "true" {
			products, err = models.ListAllProducts(q)
		} else {
			products, err = models.ListAvailableProducts(q)
		}
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		payloads := make([]ProductPayload, 0, len(products))
		for _, p := range products {
			payloads = append(payloads, payload(c, db, cache, p))
		}

		response.Success(c, http.StatusOK, "All products has been fetched", payloads)
	}
}

// GET /api/products/:id
func GetProductByID(db *gorm.DB, cache *services.RatingsCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.Preload("Category").Preload("Images").
			Preload("SizeInventory.Size").Preload("ColourInventory.Colour").
			Preload("Reviews").
			First(&product, "id = ? OR slug = ?", c.Param("id"), c.Param("id")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, http.StatusNotFound, "Product not found")
			} else {
				response.Fail(c, http.StatusInternalServerError, "Failed to retrieve product")
			}
			return
		}

		response.Success(c, http.StatusOK, "The detail information about the product", payload(c, db, cache, product))
	}
}

// PUT /api/products/:id
func UpdateProduct(db *gorm.DB, cache *services.RatingsCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if input.Title != nil && *input.Title != product.Title {
			var existing models.Product
			if err := db.Select("id").First(&existing, "slug = ? AND id <> ?", models.Slugify(*input.Title), product.ID).Error; err == nil {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"title": "a product with an equivalent title already exists"})
				return
			}
			product.Title = *input.Title
		}
		if input.CategoryID != nil {
			product.CategoryID = input.CategoryID
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Style != nil {
			product.Style = *input.Style
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.ShippingFee != nil {
			product.ShippingFee = *input.ShippingFee
		}
		if input.ShippingOutDays != nil {
			product.ShippingOutDays = *input.ShippingOutDays
		}
		if input.PercentageOff != nil {
			if *input.PercentageOff < 0 || *input.PercentageOff > 100 {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"percentage_off": "must be between 0 and 100"})
				return
			}
			product.PercentageOff = *input.PercentageOff
		}
		if input.Inventory != nil {
			product.Inventory = *input.Inventory
		}
		if input.FlashSaleStartDate != nil {
			product.FlashSaleStartDate = input.FlashSaleStartDate
		}
		if input.FlashSaleEndDate != nil {
			product.FlashSaleEndDate = input.FlashSaleEndDate
		}
		if input.FeaturedProduct != nil {
			product.FeaturedProduct = *input.FeaturedProduct
		}

		if err := db.Save(&product).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to update product")
			return
		}

		response.Success(c, http.StatusOK, "The details of the product has been updated", payload(c, db, cache, product))
	}
}

// DELETE /api/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}

		response.Success(c, http.StatusOK, "The product has been deleted successful", nil)
	}
}
