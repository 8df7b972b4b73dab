package models

import (
	"errors"
	"strings"
	"time"
)

type PaymentStatus string
type ShippingStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"

	ShippingStatusPending    ShippingStatus = "pending"
	ShippingStatusProcessing ShippingStatus = "processing"
	ShippingStatusShipped    ShippingStatus = "shipped"
	ShippingStatusDelivered  ShippingStatus = "delivered"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToLower(s) {
	case string(PaymentStatusPending):
		return PaymentStatusPending, nil
	case string(PaymentStatusSuccessful):
		return PaymentStatusSuccessful, nil
	case string(PaymentStatusFailed):
		return PaymentStatusFailed, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

func ParseShippingStatus(s string) (ShippingStatus, error) {
	switch strings.ToLower(s) {
	case string(ShippingStatusPending):
		return ShippingStatusPending, nil
	case string(ShippingStatusProcessing):
		return ShippingStatusProcessing, nil
	case string(ShippingStatusShipped):
		return ShippingStatusShipped, nil
	case string(ShippingStatusDelivered):
		return ShippingStatusDelivered, nil
	default:
		return "", errors.New("invalid shipping status")
	}
}

type Order struct {
	BaseModel
	CustomerID     string         `gorm:"index;not null" json:"customer_id"`
	Customer       Customer       `gorm:"foreignKey:CustomerID" json:"-"`
	TransactionRef string         `gorm:"uniqueIndex;not null" json:"transaction_ref"`
	PlacedAt       time.Time      `json:"placed_at"`
	TotalPrice     float64        `json:"total_price"`
	AddressID      *string        `json:"address_id"`
	Address        *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	PaymentStatus  PaymentStatus  `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	ShippingStatus ShippingStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"shipping_status"`
	Items          []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots price, size and colour at order time, independent
// of later product edits.
type OrderItem struct {
	BaseModel
	OrderID    string  `gorm:"index;not null" json:"order_id"`
	CustomerID string  `gorm:"index;not null" json:"customer_id"`
	ProductID  string  `gorm:"index" json:"product_id"`
	Product    Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Size       string  `json:"size"`
	Colour     string  `json:"colour"`
	Ordered    bool    `gorm:"default:true" json:"ordered"`
}
