package models

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrCouponExpiryPast rejects saving a coupon whose expiry is not
// strictly in the future.
var ErrCouponExpiryPast = errors.New("coupon expiry date must be in the future")

// CouponCode is a time-limited discount code. The code itself is eight
// uppercase hex characters, generated once at first save if absent.
type CouponCode struct {
	BaseModel
	Code       string    `gorm:"uniqueIndex;size:8" json:"code"`
	Price      float64   `json:"price"`
	Expired    bool      `json:"expired"`
	ExpiryDate time.Time `gorm:"not null" json:"expiry_date"`
}

func (c *CouponCode) BeforeSave(tx *gorm.DB) error {
	if c.Code == "" {
		code, err := GenerateCouponCode()
		if err != nil {
			return err
		}
		c.Code = code
	}
	if !c.ExpiryDate.After(time.Now()) {
		return ErrCouponExpiryPast
	}
	return nil
}

// GenerateCouponCode returns eight uppercase hex characters.
func GenerateCouponCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// IsLive reports whether the coupon can still be redeemed at the given
// time.
func (c *CouponCode) IsLive(now time.Time) bool {
	return !c.Expired && now.Before(c.ExpiryDate)
}

// MarkIfExpired flips the expired flag on a persisted coupon once its
// expiry has passed. The column update bypasses BeforeSave so an overdue
// coupon can still be flagged.
func (c *CouponCode) MarkIfExpired(db *gorm.DB, now time.Time) (bool, error) {
	if c.Expired || now.Before(c.ExpiryDate) {
		return false, nil
	}
	if err := db.Model(c).UpdateColumn("expired", true).Error; err != nil {
		return false, err
	}
	c.Expired = true
	return true, nil
}
