package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	BaseModel
	Name     string    `gorm:"unique;not null" json:"name"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

type Size struct {
	BaseModel
	Title string `gorm:"unique;not null" json:"title"`
}

type Colour struct {
	BaseModel
	Name    string `gorm:"unique;not null" json:"name"`
	HexCode string `gorm:"size:7" json:"hex_code"`
}

type Product struct {
	BaseModel
	SellerID           string            `gorm:"index;not null" json:"seller_id"`
	Seller             Seller            `gorm:"foreignKey:SellerID" json:"-"`
	Title              string            `gorm:"unique;not null" json:"title"`
	Slug               string            `gorm:"uniqueIndex" json:"slug"`
	CategoryID         *string           `gorm:"index" json:"category_id"`
	Category           *Category         `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Description        string            `gorm:"size:500" json:"description"`
	Style              string            `json:"style"`
	Price              float64           `gorm:"not null" json:"price"`
	ShippingFee        float64           `json:"shipping_fee"`
	ShippingOutDays    int               `json:"shipping_out_days"`
	PercentageOff      int               `json:"percentage_off"`
	Inventory          int               `json:"inventory"`
	FlashSaleStartDate *time.Time        `json:"flash_sale_start_date"`
	FlashSaleEndDate   *time.Time        `json:"flash_sale_end_date"`
	FeaturedProduct    bool              `json:"featured_product"`
	Images             []ProductImage    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reviews            []ProductReview   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	SizeInventory      []SizeInventory   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"size_inventory,omitempty"`
	ColourInventory    []ColourInventory `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colour_inventory,omitempty"`

	avgRatings *float64 `gorm:"-"`
}

// BeforeSave keeps the slug derived from the title.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Title != "" {
		p.Slug = Slugify(p.Title)
	}
	return nil
}

// DiscountPrice returns price reduced by PercentageOff, rounded to two
// decimals. It is 0 when no discount is set.
func (p *Product) DiscountPrice() float64 {
	if p.PercentageOff <= 0 {
		return 0
	}
	price := decimal.NewFromFloat(p.Price)
	pct := decimal.NewFromInt(int64(p.PercentageOff)).Div(decimal.NewFromInt(100))
	f, _ := price.Mul(decimal.NewFromInt(1).Sub(pct)).Round(2).Float64()
	return f
}

// AverageRatings returns the mean of the product's review ratings, 0 when
// there are none. The aggregate is cached on the struct after first read.
func (p *Product) AverageRatings(db *gorm.DB) float64 {
	if p.avgRatings != nil {
		return *p.avgRatings
	}
	var ratings []int
	db.Model(&ProductReview{}).Where("product_id = ?", p.ID).Pluck("rating", &ratings)
	avg := AverageOf(ratings)
	p.avgRatings = &avg
	return avg
}

// AverageOf is the plain mean, 0 for an empty slice.
func AverageOf(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// Slugify lowercases the title and collapses runs of non-alphanumerics
// into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ListAvailableProducts returns products a storefront can sell: in stock
// and not removed. Operator views use ListAllProducts instead.
func ListAvailableProducts(db *gorm.DB) ([]Product, error) {
	var products []Product
	err := db.Preload("Category").Preload("Images").
		Where("inventory > 0").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// ListAllProducts returns every product regardless of stock.
func ListAllProducts(db *gorm.DB) ([]Product, error) {
	var products []Product
	err := db.Preload("Category").Preload("Images").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// SizeInventory is the stock count and surcharge for one (product, size)
// pair.
type SizeInventory struct {
	BaseModel
	ProductID  string  `gorm:"index:idx_product_size,unique;not null" json:"product_id"`
	SizeID     string  `gorm:"index:idx_product_size,unique;not null" json:"size_id"`
	Size       Size    `gorm:"foreignKey:SizeID" json:"size"`
	Quantity   int     `json:"quantity"`
	ExtraPrice float64 `json:"extra_price"`
}

// ColourInventory is the stock count and surcharge for one
// (product, colour) pair.
type ColourInventory struct {
	BaseModel
	ProductID  string  `gorm:"index:idx_product_colour,unique;not null" json:"product_id"`
	ColourID   string  `gorm:"index:idx_product_colour,unique;not null" json:"colour_id"`
	Colour     Colour  `gorm:"foreignKey:ColourID" json:"colour"`
	Quantity   int     `json:"quantity"`
	ExtraPrice float64 `json:"extra_price"`
}

type ProductImage struct {
	BaseModel
	ProductID string `gorm:"index;not null" json:"product_id"`
	Image     string `gorm:"not null" json:"image"`
}

const (
	MinRating = 1
	MaxRating = 5
)

type ProductReview struct {
	BaseModel
	CustomerID  string               `gorm:"index;not null" json:"customer_id"`
	Customer    Customer             `gorm:"foreignKey:CustomerID" json:"-"`
	ProductID   string               `gorm:"index;not null" json:"product_id"`
	Rating      int                  `gorm:"not null" json:"rating"`
	Description string               `gorm:"size:500" json:"description"`
	Images      []ProductReviewImage `gorm:"foreignKey:ProductReviewID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

type ProductReviewImage struct {
	BaseModel
	ProductReviewID string `gorm:"index;not null" json:"product_review_id"`
	Image           string `gorm:"not null" json:"image"`
}
