package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stitchcart/ecommerce-api/mocks"
	"github.com/stitchcart/ecommerce-api/models"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) CartWithItems(customerID string) (*models.Cart, error) {
	args := m.Called(customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockOrderRepository) AddressBelongsTo(addressID, customerID string) (bool, error) {
	args := m.Called(addressID, customerID)
	return args.Bool(0), args.Error(1)
}

// InTransaction runs the callback against the mock itself, so per-row
// expectations carry into the transactional section.
func (m *mockOrderRepository) InTransaction(fn func(tx OrderRepository) error) error {
	return fn(m)
}

func (m *mockOrderRepository) ProductForUpdate(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockOrderRepository) SaveProduct(p *models.Product) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *mockOrderRepository) SizeStockForUpdate(productID, sizeID string) (*models.SizeInventory, error) {
	args := m.Called(productID, sizeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SizeInventory), args.Error(1)
}

func (m *mockOrderRepository) SaveSizeStock(inv *models.SizeInventory) error {
	args := m.Called(inv)
	return args.Error(0)
}

func (m *mockOrderRepository) ColourStockForUpdate(productID, colourID string) (*models.ColourInventory, error) {
	args := m.Called(productID, colourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ColourInventory), args.Error(1)
}

func (m *mockOrderRepository) SaveColourStock(inv *models.ColourInventory) error {
	args := m.Called(inv)
	return args.Error(0)
}

func (m *mockOrderRepository) CouponByCode(code string) (*models.CouponCode, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CouponCode), args.Error(1)
}

func (m *mockOrderRepository) FlagCouponExpired(c *models.CouponCode) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *mockOrderRepository) CreateOrder(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *mockOrderRepository) ClearCart(cartID string) error {
	args := m.Called(cartID)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func testCustomer() *models.Customer {
	return &models.Customer{BaseModel: models.BaseModel{ID: "c1"}, UserID: "u1"}
}

// singleItemRepo is a repo with a one-line cart: one unit of a 40.00
// product with no shipping fee, discount or variants, so the cart total
// is exactly 40.00.
func singleItemRepo() (*mockOrderRepository, *models.Product) {
	product := &models.Product{
		BaseModel: models.BaseModel{ID: "p1"},
		Title:     "Linen Shirt",
		Price:     40,
		Inventory: 10,
	}
	cart := &models.Cart{
		BaseModel:  models.BaseModel{ID: "cart1"},
		CustomerID: "c1",
		Items: []models.CartItem{
			{CartID: "cart1", ProductID: "p1", Quantity: 1},
		},
	}

	repo := new(mockOrderRepository)
	repo.On("CartWithItems", "c1").Return(cart, nil)
	repo.On("ProductForUpdate", "p1").Return(product, nil)
	repo.On("SaveProduct", mock.AnythingOfType("*models.Product")).Return(nil)
	repo.On("CreateOrder", mock.AnythingOfType("*models.Order")).Return(nil)
	repo.On("ClearCart", "cart1").Return(nil)
	return repo, product
}

func TestOrderServicePlaceOrderEmptyCart(t *testing.T) {
	t.Run("cart with no items", func(t *testing.T) {
		repo := new(mockOrderRepository)
		repo.On("CartWithItems", "c1").Return(&models.Cart{
			BaseModel:  models.BaseModel{ID: "cart1"},
			CustomerID: "c1",
		}, nil)

		svc := NewOrderService(repo, nil)
		order, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{})
		assert.ErrorIs(t, err, ErrCartEmpty)
		assert.Nil(t, order)
	})

	t.Run("no cart row at all", func(t *testing.T) {
		repo := new(mockOrderRepository)
		repo.On("CartWithItems", "c1").Return(nil, ErrNotFound)

		svc := NewOrderService(repo, nil)
		_, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{})
		assert.ErrorIs(t, err, ErrCartEmpty)
	})
}

func TestOrderServicePlaceOrderUnknownAddress(t *testing.T) {
	repo, _ := singleItemRepo()
	repo.On("AddressBelongsTo", "a1", "c1").Return(false, nil)

	svc := NewOrderService(repo, nil)
	_, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{AddressID: strPtr("a1")})
	assert.ErrorIs(t, err, ErrAddressUnknown)
	repo.AssertNotCalled(t, "CreateOrder", mock.Anything)
}

func TestOrderServicePlaceOrderInsufficientStock(t *testing.T) {
	t.Run("product stock below quantity", func(t *testing.T) {
		repo, product := singleItemRepo()
		product.Inventory = 0

		svc := NewOrderService(repo, nil)
		_, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "CreateOrder", mock.Anything)
		repo.AssertNotCalled(t, "ClearCart", mock.Anything)
	})

	t.Run("variant stock below quantity", func(t *testing.T) {
		product := &models.Product{
			BaseModel: models.BaseModel{ID: "p1"},
			Title:     "Linen Shirt",
			Price:     40,
			Inventory: 10,
		}
		cart := &models.Cart{
			BaseModel:  models.BaseModel{ID: "cart1"},
			CustomerID: "c1",
			Items: []models.CartItem{
				{
					CartID:    "cart1",
					ProductID: "p1",
					SizeID:    strPtr("s1"),
					Size:      &models.Size{BaseModel: models.BaseModel{ID: "s1"}, Title: "XL"},
					Quantity:  3,
				},
			},
		}

		repo := new(mockOrderRepository)
		repo.On("CartWithItems", "c1").Return(cart, nil)
		repo.On("ProductForUpdate", "p1").Return(product, nil)
		repo.On("SaveProduct", mock.AnythingOfType("*models.Product")).Return(nil)
		repo.On("SizeStockForUpdate", "p1", "s1").Return(&models.SizeInventory{
			ProductID: "p1", SizeID: "s1", Quantity: 2,
		}, nil)

		svc := NewOrderService(repo, nil)
		_, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "CreateOrder", mock.Anything)
	})
}

func TestOrderServicePlaceOrderSnapshotsAndDeductsStock(t *testing.T) {
	product := &models.Product{
		BaseModel:     models.BaseModel{ID: "p1"},
		Title:         "Denim Jacket",
		Price:         100,
		PercentageOff: 10,
		ShippingFee:   5,
		Inventory:     10,
	}
	sizeStock := &models.SizeInventory{
		ProductID: "p1", SizeID: "s1", Quantity: 5, ExtraPrice: 1.5,
	}
	cart := &models.Cart{
		BaseModel:  models.BaseModel{ID: "cart1"},
		CustomerID: "c1",
		Items: []models.CartItem{
			{
				CartID:     "cart1",
				ProductID:  "p1",
				SizeID:     strPtr("s1"),
				Size:       &models.Size{BaseModel: models.BaseModel{ID: "s1"}, Title: "XL"},
				Quantity:   2,
				ExtraPrice: 1.5,
			},
		},
	}

	repo := new(mockOrderRepository)
	repo.On("CartWithItems", "c1").Return(cart, nil)
	repo.On("ProductForUpdate", "p1").Return(product, nil)
	repo.On("SaveProduct", mock.AnythingOfType("*models.Product")).Return(nil)
	repo.On("SizeStockForUpdate", "p1", "s1").Return(sizeStock, nil)
	repo.On("SaveSizeStock", mock.AnythingOfType("*models.SizeInventory")).Return(nil)
	repo.On("CreateOrder", mock.AnythingOfType("*models.Order")).Return(nil)
	repo.On("ClearCart", "cart1").Return(nil)

	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil)

	svc := NewOrderService(repo, publisher)
	order, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{})
	require.NoError(t, err)
	require.NotNil(t, order)

	// Stock deducted on product and variant.
	assert.Equal(t, 8, product.Inventory)
	assert.Equal(t, 3, sizeStock.Quantity)

	// Line snapshot: discount price 90 plus 1.50 surcharge per unit.
	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Denim Jacket", item.Title)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 91.5, item.UnitPrice)
	assert.Equal(t, "XL", item.Size)
	assert.True(t, item.Ordered)

	// Cart total: (90 + 5 + 1.5) * 2.
	assert.Equal(t, 193.0, order.TotalPrice)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.ShippingStatusPending, order.ShippingStatus)
	assert.NotEmpty(t, order.TransactionRef)

	repo.AssertCalled(t, "ClearCart", "cart1")
	publisher.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestOrderServicePlaceOrderCoupon(t *testing.T) {
	t.Run("live coupon reduces the total", func(t *testing.T) {
		repo, _ := singleItemRepo()
		repo.On("CouponByCode", "SAVE15AA").Return(&models.CouponCode{
			Code: "SAVE15AA", Price: 15, ExpiryDate: time.Now().Add(time.Hour),
		}, nil)

		svc := NewOrderService(repo, nil)
		order, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{CouponCode: strPtr("SAVE15AA")})
		require.NoError(t, err)
		assert.Equal(t, 25.0, order.TotalPrice)
	})

	t.Run("coupon above the total clamps at zero", func(t *testing.T) {
		repo, _ := singleItemRepo()
		repo.On("CouponByCode", "BIGBIGAA").Return(&models.CouponCode{
			Code: "BIGBIGAA", Price: 100, ExpiryDate: time.Now().Add(time.Hour),
		}, nil)

		svc := NewOrderService(repo, nil)
		order, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{CouponCode: strPtr("BIGBIGAA")})
		require.NoError(t, err)
		assert.Equal(t, 0.0, order.TotalPrice)
	})

	t.Run("overdue coupon is flagged expired and rejected", func(t *testing.T) {
		repo, _ := singleItemRepo()
		overdue := &models.CouponCode{
			Code: "OLDOLDAA", Price: 15, ExpiryDate: time.Now().Add(-time.Hour),
		}
		repo.On("CouponByCode", "OLDOLDAA").Return(overdue, nil)
		repo.On("FlagCouponExpired", overdue).Return(nil)

		svc := NewOrderService(repo, nil)
		_, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{CouponCode: strPtr("OLDOLDAA")})
		assert.ErrorIs(t, err, ErrCouponNotLive)
		repo.AssertCalled(t, "FlagCouponExpired", overdue)
		repo.AssertNotCalled(t, "ClearCart", mock.Anything)
	})

	t.Run("already flagged coupon is rejected without another flip", func(t *testing.T) {
		repo, _ := singleItemRepo()
		repo.On("CouponByCode", "DEADAAAA").Return(&models.CouponCode{
			Code: "DEADAAAA", Price: 15, Expired: true, ExpiryDate: time.Now().Add(-time.Hour),
		}, nil)

		svc := NewOrderService(repo, nil)
		_, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{CouponCode: strPtr("DEADAAAA")})
		assert.ErrorIs(t, err, ErrCouponNotLive)
		repo.AssertNotCalled(t, "FlagCouponExpired", mock.Anything)
	})

	t.Run("unknown coupon is rejected", func(t *testing.T) {
		repo, _ := singleItemRepo()
		repo.On("CouponByCode", "NOPENOPE").Return(nil, ErrNotFound)

		svc := NewOrderService(repo, nil)
		_, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{CouponCode: strPtr("NOPENOPE")})
		assert.ErrorIs(t, err, ErrCouponNotLive)
	})
}

func TestOrderServicePlaceOrderClearsCart(t *testing.T) {
	repo, _ := singleItemRepo()

	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil)

	svc := NewOrderService(repo, publisher)
	order, err := svc.PlaceOrder(testCustomer(), PlaceOrderInput{})
	require.NoError(t, err)
	assert.Equal(t, 40.0, order.TotalPrice)

	repo.AssertCalled(t, "ClearCart", "cart1")
	publisher.AssertExpectations(t)
}
