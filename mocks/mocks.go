package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stitchcart/ecommerce-api/models"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateCustomerAccount(user *models.User, customer *models.Customer) error {
	args := m.Called(user, customer)
	return args.Error(0)
}

func (m *MockAccountRepository) CreateSellerAccount(user *models.User, seller *models.Seller) error {
	args := m.Called(user, seller)
	return args.Error(0)
}

func (m *MockAccountRepository) UserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountRepository) UserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountRepository) CustomerByUserID(userID string) (*models.Customer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockAccountRepository) SellerByUserID(userID string) (*models.Seller, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seller), args.Error(1)
}

func (m *MockAccountRepository) DeleteCustomer(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteSeller(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteUser(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveOtp(otp *models.Otp) error {
	args := m.Called(otp)
	return args.Error(0)
}

func (m *MockAccountRepository) LatestOtp(userID string) (*models.Otp, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Otp), args.Error(1)
}

func (m *MockAccountRepository) ExpireOtp(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAccountRepository) MarkUserVerified(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}
