package models

import (
	"github.com/shopspring/decimal"
)

// Cart is the pre-purchase staging area, one per customer.
type Cart struct {
	BaseModel
	CustomerID string     `gorm:"uniqueIndex;not null" json:"customer_id"`
	Customer   Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	BaseModel
	CartID     string  `gorm:"index;not null" json:"cart_id"`
	ProductID  string  `gorm:"index;not null" json:"product_id"`
	Product    Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	SizeID     *string `json:"size_id"`
	Size       *Size   `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	ColourID   *string `json:"colour_id"`
	Colour     *Colour `gorm:"foreignKey:ColourID" json:"colour,omitempty"`
	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	ExtraPrice float64 `json:"extra_price"`
}

// TotalPrice is quantity x (discount price when set, else price), plus
// the product's shipping fee and the variant surcharge per unit. Requires
// Product to be loaded.
func (ci *CartItem) TotalPrice() float64 {
	unit := ci.Product.DiscountPrice()
	if unit <= 0 {
		unit = ci.Product.Price
	}
	qty := decimal.NewFromInt(int64(ci.Quantity))
	total := decimal.NewFromFloat(unit).
		Add(decimal.NewFromFloat(ci.Product.ShippingFee)).
		Add(decimal.NewFromFloat(ci.ExtraPrice)).
		Mul(qty)
	f, _ := total.Round(2).Float64()
	return f
}

// TotalPrice sums the item totals. Requires Items (with their Products)
// to be loaded.
func (c *Cart) TotalPrice() float64 {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(decimal.NewFromFloat(c.Items[i].TotalPrice()))
	}
	f, _ := total.Round(2).Float64()
	return f
}
