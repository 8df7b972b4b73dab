package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailRequired = errors.New("email address is required")
	ErrInvalidEmail  = errors.New("a valid email address must be provided")
	ErrNameRequired  = errors.New("full name is required")
	ErrPasswordShort = errors.New("password must be at least 8 characters")
	ErrEmailTaken    = errors.New("a user with this email already exists")
	ErrOtpInvalid    = errors.New("invalid one-time password")
	ErrOtpExpired    = errors.New("one-time password has expired")
)

// AccountRepository is the persistence surface the account service needs.
// Implementations return ErrNotFound for missing rows.
type AccountRepository interface {
	CreateCustomerAccount(user *models.User, customer *models.Customer) error
	CreateSellerAccount(user *models.User, seller *models.Seller) error
	UserByID(id string) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	CustomerByUserID(userID string) (*models.Customer, error)
	SellerByUserID(userID string) (*models.Seller, error)
	DeleteCustomer(id string) error
	DeleteSeller(id string) error
	DeleteUser(id string) error
	SaveOtp(otp *models.Otp) error
	LatestOtp(userID string) (*models.Otp, error)
	ExpireOtp(id string) error
	MarkUserVerified(userID string) error
}

// AccountService owns the User<->profile invariant: account creation
// makes exactly one Customer or Seller per User, and profile deletion
// cascades to the owning User. These used to be persistence-event side
// effects in an earlier design; here they are explicit operations.
type AccountService struct {
	Repo AccountRepository
}

func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{Repo: repo}
}

type CreateUserInput struct {
	Email       string `json:"email" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
	Address     string `json:"address"`
	IsCustomer  *bool  `json:"is_customer"`
	CompanyName string `json:"company_name"`
	Gender      string `json:"gender"`
}

// CreateUser registers a user and its profile in one step. IsCustomer
// defaults to true.
func (s *AccountService) CreateUser(input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	switch {
	case email == "":
		return nil, ErrEmailRequired
	case !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@"):
		return nil, ErrInvalidEmail
	case strings.TrimSpace(input.FullName) == "":
		return nil, ErrNameRequired
	case len(input.Password) < 8:
		return nil, ErrPasswordShort
	}

	if _, err := s.Repo.UserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	isCustomer := true
	if input.IsCustomer != nil {
		isCustomer = *input.IsCustomer
	}

	user := &models.User{
		Email:       email,
		FullName:    strings.TrimSpace(input.FullName),
		PhoneNumber: input.PhoneNumber,
		Country:     input.Country,
		Address:     input.Address,
		IsCustomer:  isCustomer,
	}
	user.PasswordHash = string(hash)

	if isCustomer {
		err = s.Repo.CreateCustomerAccount(user, &models.Customer{Gender: input.Gender})
	} else {
		err = s.Repo.CreateSellerAccount(user, &models.Seller{CompanyName: input.CompanyName})
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteCustomerAccount removes the customer profile for the user and
// the user itself. Rows already gone are skipped, so the operation is
// idempotent.
func (s *AccountService) DeleteCustomerAccount(userID string) error {
	customer, err := s.Repo.CustomerByUserID(userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if customer != nil {
		if err := s.Repo.DeleteCustomer(customer.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	if err := s.Repo.DeleteUser(userID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// DeleteSellerAccount is the seller-side counterpart of
// DeleteCustomerAccount.
func (s *AccountService) DeleteSellerAccount(userID string) error {
	seller, err := s.Repo.SellerByUserID(userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if seller != nil {
		if err := s.Repo.DeleteSeller(seller.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	if err := s.Repo.DeleteUser(userID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// IssueOtp creates a fresh code for the user, valid for models.OtpTTL.
func (s *AccountService) IssueOtp(userID string) (*models.Otp, error) {
	if _, err := s.Repo.UserByID(userID); err != nil {
		return nil, err
	}
	otp, err := models.NewOtp(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveOtp(otp); err != nil {
		return nil, err
	}
	return otp, nil
}

// VerifyOtp checks the latest code for the user. A correct live code
// marks the user verified and retires the code; an overdue code is
// flagged expired before being rejected.
func (s *AccountService) VerifyOtp(userID string, code int) error {
	otp, err := s.Repo.LatestOtp(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrOtpInvalid
		}
		return err
	}
	if otp.IsExpired(time.Now()) {
		if !otp.Expired {
			if err := s.Repo.ExpireOtp(otp.ID); err != nil {
				return err
			}
		}
		return ErrOtpExpired
	}
	if otp.Code != code {
		return ErrOtpInvalid
	}
	if err := s.Repo.MarkUserVerified(userID); err != nil {
		return err
	}
	return s.Repo.ExpireOtp(otp.ID)
}

// CheckPassword compares a candidate password against the stored hash.
func (s *AccountService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// GormAccountRepository is the database-backed AccountRepository.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

var _ AccountRepository = (*GormAccountRepository)(nil)

func (r *GormAccountRepository) CreateCustomerAccount(user *models.User, customer *models.Customer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		customer.UserID = user.ID
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		// A customer gets an empty cart up front.
		return tx.Create(&models.Cart{CustomerID: customer.ID}).Error
	})
}

func (r *GormAccountRepository) CreateSellerAccount(user *models.User, seller *models.Seller) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		seller.UserID = user.ID
		return tx.Create(seller).Error
	})
}

func (r *GormAccountRepository) UserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (r *GormAccountRepository) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (r *GormAccountRepository) CustomerByUserID(userID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "user_id = ?", userID).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &customer, nil
}

func (r *GormAccountRepository) SellerByUserID(userID string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.First(&seller, "user_id = ?", userID).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &seller, nil
}

func (r *GormAccountRepository) DeleteCustomer(id string) error {
	return r.db.Delete(&models.Customer{}, "id = ?", id).Error
}

func (r *GormAccountRepository) DeleteSeller(id string) error {
	return r.db.Delete(&models.Seller{}, "id = ?", id).Error
}

func (r *GormAccountRepository) DeleteUser(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *GormAccountRepository) SaveOtp(otp *models.Otp) error {
	return r.db.Create(otp).Error
}

func (r *GormAccountRepository) LatestOtp(userID string) (*models.Otp, error) {
	var otp models.Otp
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").First(&otp).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &otp, nil
}

func (r *GormAccountRepository) ExpireOtp(id string) error {
	return r.db.Model(&models.Otp{}).Where("id = ?", id).UpdateColumn("expired", true).Error
}

func (r *GormAccountRepository) MarkUserVerified(userID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("is_verified", true).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
