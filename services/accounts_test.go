package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stitchcart/ecommerce-api/mocks"
	"github.com/stitchcart/ecommerce-api/models"
)

func boolPtr(b bool) *bool { return &b }

func TestAccountServiceCreateUser(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateUserInput
		setupMocks    func(repo *mocks.MockAccountRepository)
		expectedError error
		wantCustomer  bool
		wantSeller    bool
	}{
		{
			name: "customer account by default",
			input: CreateUserInput{
				Email:    "jane@example.com",
				FullName: "Jane Doe",
				Password: "hunter2hunter2",
			},
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.On("UserByEmail", "jane@example.com").Return(nil, ErrNotFound)
				repo.On("CreateCustomerAccount", mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.Customer")).Return(nil)
			},
			wantCustomer: true,
		},
		{
			name: "seller account when is_customer is false",
			input: CreateUserInput{
				Email:       "acme@example.com",
				FullName:    "Acme Threads",
				Password:    "hunter2hunter2",
				IsCustomer:  boolPtr(false),
				CompanyName: "Acme Threads Ltd",
			},
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.On("UserByEmail", "acme@example.com").Return(nil, ErrNotFound)
				repo.On("CreateSellerAccount", mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.Seller")).Return(nil)
			},
			wantSeller: true,
		},
		{
			name: "duplicate email rejected",
			input: CreateUserInput{
				Email:    "jane@example.com",
				FullName: "Jane Doe",
				Password: "hunter2hunter2",
			},
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.On("UserByEmail", "jane@example.com").Return(&models.User{Email: "jane@example.com"}, nil)
			},
			expectedError: ErrEmailTaken,
		},
		{
			name: "invalid email rejected",
			input: CreateUserInput{
				Email:    "not-an-email",
				FullName: "Jane Doe",
				Password: "hunter2hunter2",
			},
			setupMocks:    func(repo *mocks.MockAccountRepository) {},
			expectedError: ErrInvalidEmail,
		},
		{
			name: "missing full name rejected",
			input: CreateUserInput{
				Email:    "jane@example.com",
				Password: "hunter2hunter2",
			},
			setupMocks:    func(repo *mocks.MockAccountRepository) {},
			expectedError: ErrNameRequired,
		},
		{
			name: "short password rejected",
			input: CreateUserInput{
				Email:    "jane@example.com",
				FullName: "Jane Doe",
				Password: "short",
			},
			setupMocks:    func(repo *mocks.MockAccountRepository) {},
			expectedError: ErrPasswordShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockAccountRepository)
			tt.setupMocks(repo)

			svc := NewAccountService(repo)
			user, err := svc.CreateUser(tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.wantCustomer, user.IsCustomer)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.input.Password)))
				if tt.wantCustomer {
					repo.AssertNotCalled(t, "CreateSellerAccount", mock.Anything, mock.Anything)
				}
				if tt.wantSeller {
					repo.AssertNotCalled(t, "CreateCustomerAccount", mock.Anything, mock.Anything)
				}
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAccountServiceDeleteCustomerAccount(t *testing.T) {
	t.Run("deletes profile and owning user", func(t *testing.T) {
		repo := new(mocks.MockAccountRepository)
		repo.On("CustomerByUserID", "u1").Return(&models.Customer{BaseModel: models.BaseModel{ID: "c1"}, UserID: "u1"}, nil)
		repo.On("DeleteCustomer", "c1").Return(nil)
		repo.On("DeleteUser", "u1").Return(nil)

		svc := NewAccountService(repo)
		assert.NoError(t, svc.DeleteCustomerAccount("u1"))
		repo.AssertExpectations(t)
	})

	t.Run("no-op when profile already gone", func(t *testing.T) {
		repo := new(mocks.MockAccountRepository)
		repo.On("CustomerByUserID", "u1").Return(nil, ErrNotFound)
		repo.On("DeleteUser", "u1").Return(nil)

		svc := NewAccountService(repo)
		assert.NoError(t, svc.DeleteCustomerAccount("u1"))
		repo.AssertNotCalled(t, "DeleteCustomer", mock.Anything)
	})

	t.Run("tolerates user already gone", func(t *testing.T) {
		repo := new(mocks.MockAccountRepository)
		repo.On("CustomerByUserID", "u1").Return(&models.Customer{BaseModel: models.BaseModel{ID: "c1"}, UserID: "u1"}, nil)
		repo.On("DeleteCustomer", "c1").Return(nil)
		repo.On("DeleteUser", "u1").Return(ErrNotFound)

		svc := NewAccountService(repo)
		assert.NoError(t, svc.DeleteCustomerAccount("u1"))
	})

	t.Run("surfaces storage failures", func(t *testing.T) {
		repo := new(mocks.MockAccountRepository)
		dbErr := errors.New("connection reset")
		repo.On("CustomerByUserID", "u1").Return(nil, dbErr)

		svc := NewAccountService(repo)
		assert.ErrorIs(t, svc.DeleteCustomerAccount("u1"), dbErr)
	})
}

func TestAccountServiceDeleteSellerAccount(t *testing.T) {
	repo := new(mocks.MockAccountRepository)
	repo.On("SellerByUserID", "u2").Return(&models.Seller{BaseModel: models.BaseModel{ID: "s1"}, UserID: "u2"}, nil)
	repo.On("DeleteSeller", "s1").Return(nil)
	repo.On("DeleteUser", "u2").Return(nil)

	svc := NewAccountService(repo)
	assert.NoError(t, svc.DeleteSellerAccount("u2"))
	repo.AssertExpectations(t)
}

func TestAccountServiceCheckPassword(t *testing.T) {
	repo := new(mocks.MockAccountRepository)
	repo.On("UserByEmail", "jane@example.com").Return(nil, ErrNotFound)
	repo.On("CreateCustomerAccount", mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.Customer")).Return(nil)

	svc := NewAccountService(repo)
	user, err := svc.CreateUser(CreateUserInput{
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.True(t, svc.CheckPassword(user, "hunter2hunter2"))
	assert.False(t, svc.CheckPassword(user, "wrong-password"))
}

func TestAccountServiceVerifyOtp(t *testing.T) {
	tests := []struct {
		name          string
		code          int
		setupMocks    func(repo *mocks.MockAccountRepository)
		expectedError error
	}{
		{
			name: "correct live code verifies the user",
			code: 123456,
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.On("LatestOtp", "u1").Return(&models.Otp{
					BaseModel:  models.BaseModel{ID: "otp1"},
					UserID:     "u1",
					Code:       123456,
					ExpiryDate: time.Now().Add(10 * time.Minute),
				}, nil)
				repo.On("MarkUserVerified", "u1").Return(nil)
				repo.On("ExpireOtp", "otp1").Return(nil)
			},
		},
		{
			name: "wrong code rejected",
			code: 999999,
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.On("LatestOtp", "u1").Return(&models.Otp{
					BaseModel:  models.BaseModel{ID: "otp1"},
					UserID:     "u1",
					Code:       123456,
					ExpiryDate: time.Now().Add(10 * time.Minute),
				}, nil)
			},
			expectedError: ErrOtpInvalid,
		},
		{
			name: "overdue code flagged expired then rejected",
			code: 123456,
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.On("LatestOtp", "u1").Return(&models.Otp{
					BaseModel:  models.BaseModel{ID: "otp1"},
					UserID:     "u1",
					Code:       123456,
					ExpiryDate: time.Now().Add(-time.Minute),
				}, nil)
				repo.On("ExpireOtp", "otp1").Return(nil)
			},
			expectedError: ErrOtpExpired,
		},
		{
			name: "no code on record",
			code: 123456,
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.On("LatestOtp", "u1").Return(nil, ErrNotFound)
			},
			expectedError: ErrOtpInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockAccountRepository)
			tt.setupMocks(repo)

			svc := NewAccountService(repo)
			err := svc.VerifyOtp("u1", tt.code)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
