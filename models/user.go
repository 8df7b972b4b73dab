package models

import (
	"crypto/rand"
	"math/big"
	"time"
)

// OtpTTL is how long a one-time password stays valid after issue.
const OtpTTL = 15 * time.Minute

type User struct {
	BaseModel
	Email          string `gorm:"unique;not null" json:"email"`
	FullName       string `gorm:"not null" json:"full_name"`
	PasswordHash   string `json:"-"`
	PhoneNumber    string `json:"phone_number"`
	Country        string `json:"country"`
	Address        string `json:"address"`
	ProfilePicture string `json:"profile_picture"`
	EmailChanged   bool   `json:"email_changed"`
	IsVerified     bool   `json:"is_verified"`
	IsCustomer     bool   `gorm:"default:true" json:"is_customer"`
}

// Customer is the buyer-side profile. Exactly one of Customer or Seller
// exists per User, chosen by User.IsCustomer at account creation.
type Customer struct {
	BaseModel
	UserID      string     `gorm:"uniqueIndex;not null" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `gorm:"size:1" json:"gender"` // "M" or "F"
}

type Seller struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	CompanyName string `json:"company_name"`
	Ratings     *int   `json:"ratings"`
}

type Otp struct {
	BaseModel
	UserID     string    `gorm:"index;not null" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Code       int       `json:"-"`
	Expired    bool      `json:"expired"`
	ExpiryDate time.Time `json:"expiry_date"`
}

// NewOtp issues a fresh six-digit code valid for OtpTTL.
func NewOtp(userID string) (*Otp, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return nil, err
	}
	return &Otp{
		UserID:     userID,
		Code:       int(n.Int64()) + 100000,
		ExpiryDate: time.Now().Add(OtpTTL),
	}, nil
}

// IsExpired reports whether the code is past its expiry at the given time.
func (o *Otp) IsExpired(now time.Time) bool {
	return o.Expired || !now.Before(o.ExpiryDate)
}
