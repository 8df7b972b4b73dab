package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

type CartItemInput struct {
	ProductID string  `json:"product_id" binding:"required"`
	SizeID    *string `json:"size_id"`
	ColourID  *string `json:"colour_id"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

// CartPayload carries the cart plus its computed totals.
type CartPayload struct {
	models.Cart
	TotalPrice float64       `json:"total_price"`
	ItemTotals []ItemPayload `json:"item_totals"`
}

type ItemPayload struct {
	ItemID     string  `json:"item_id"`
	TotalPrice float64 `json:"total_price"`
}

func customerFor(db *gorm.DB, userID string) (*models.Customer, error) {
	var customer models.Customer
	if err := db.First(&customer, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func cartFor(db *gorm.DB, customerID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where(models.Cart{CustomerID: customerID}).FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := customerFor(db, c.GetString("user_id"))
		if err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have a cart")
			return
		}

		cart, err := cartFor(db, customer.ID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		err = db.Preload("Items.Product").Preload("Items.Size").Preload("Items.Colour").
			First(cart, "id = ?", cart.ID).Error
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		payload := CartPayload{Cart: *cart, TotalPrice: cart.TotalPrice()}
		for i := range cart.Items {
			payload.ItemTotals = append(payload.ItemTotals, ItemPayload{
				ItemID:     cart.Items[i].ID,
				TotalPrice: cart.Items[i].TotalPrice(),
			})
		}

		response.Success(c, http.StatusOK, "Cart has been fetched", payload)
	}
}

// POST /api/cart
// Adds or updates a line. The variant surcharge is snapshotted onto the
// item from the product's size/colour inventory at add time.
func UpsertCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := customerFor(db, c.GetString("user_id"))
		if err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have a cart")
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"product_id": "product does not exist"})
			} else {
				response.Fail(c, http.StatusInternalServerError, "Failed to validate product")
			}
			return
		}

		extra := decimal.Zero
		if input.SizeID != nil {
			var inv models.SizeInventory
			err := db.First(&inv, "product_id = ? AND size_id = ?", product.ID, *input.SizeID).Error
			if err != nil {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"size_id": "size is not stocked for this product"})
				return
			}
			extra = extra.Add(decimal.NewFromFloat(inv.ExtraPrice))
		}
		if input.ColourID != nil {
			var inv models.ColourInventory
			err := db.First(&inv, "product_id = ? AND colour_id = ?", product.ID, *input.ColourID).Error
			if err != nil {
				response.FieldErrors(c, http.StatusBadRequest, map[string]string{"colour_id": "colour is not stocked for this product"})
				return
			}
			extra = extra.Add(decimal.NewFromFloat(inv.ExtraPrice))
		}
		extraPrice, _ := extra.Round(2).Float64()

		cart, err := cartFor(db, customer.ID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		q := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID)
		if input.SizeID != nil {
			q = q.Where("size_id = ?", *input.SizeID)
		} else {
			q = q.Where("size_id IS NULL")
		}
		if input.ColourID != nil {
			q = q.Where("colour_id = ?", *input.ColourID)
		} else {
			q = q.Where("colour_id IS NULL")
		}

		var item models.CartItem
		if err := q.First(&item).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart item")
				return
			}
			item = models.CartItem{
				CartID:     cart.ID,
				ProductID:  product.ID,
				SizeID:     input.SizeID,
				ColourID:   input.ColourID,
				Quantity:   input.Quantity,
				ExtraPrice: extraPrice,
			}
			if err := db.Create(&item).Error; err != nil {
				response.Fail(c, http.StatusInternalServerError, "Failed to add item to cart")
				return
			}
			item.Product = product
			response.Success(c, http.StatusCreated, "Item has been added to cart", item)
			return
		}

		item.Quantity = input.Quantity
		item.ExtraPrice = extraPrice
		if err := db.Save(&item).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to update cart item")
			return
		}
		item.Product = product

		response.Success(c, http.StatusOK, "Cart item has been updated", item)
	}
}

// DELETE /api/cart/:item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := customerFor(db, c.GetString("user_id"))
		if err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have a cart")
			return
		}

		cart, err := cartFor(db, customer.ID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		result := db.Where("cart_id = ? AND id = ?", cart.ID, c.Param("item_id")).Delete(&models.CartItem{})
		if result.Error != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to remove cart item")
			return
		}
		if result.RowsAffected == 0 {
			response.Fail(c, http.StatusNotFound, "Cart item not found")
			return
		}

		response.Success(c, http.StatusOK, "Cart item has been removed", nil)
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := customerFor(db, c.GetString("user_id"))
		if err != nil {
			response.Fail(c, http.StatusForbidden, "Only customers have a cart")
			return
		}

		cart, err := cartFor(db, customer.ID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to clear cart")
			return
		}

		response.Success(c, http.StatusOK, "Cart has been cleared", nil)
	}
}
