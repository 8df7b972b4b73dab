package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitchcart/ecommerce-api/events"
	"github.com/stitchcart/ecommerce-api/models"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCouponNotLive     = errors.New("coupon code is expired or unknown")
	ErrAddressUnknown    = errors.New("address does not belong to this customer")
)

// OrderRepository is the persistence surface order placement needs.
// Implementations return ErrNotFound for missing rows; the ForUpdate
// methods hold a row lock for the rest of the transaction.
type OrderRepository interface {
	CartWithItems(customerID string) (*models.Cart, error)
	AddressBelongsTo(addressID, customerID string) (bool, error)
	InTransaction(fn func(tx OrderRepository) error) error
	ProductForUpdate(id string) (*models.Product, error)
	SaveProduct(p *models.Product) error
	SizeStockForUpdate(productID, sizeID string) (*models.SizeInventory, error)
	SaveSizeStock(inv *models.SizeInventory) error
	ColourStockForUpdate(productID, colourID string) (*models.ColourInventory, error)
	SaveColourStock(inv *models.ColourInventory) error
	CouponByCode(code string) (*models.CouponCode, error)
	FlagCouponExpired(c *models.CouponCode) error
	CreateOrder(order *models.Order) error
	ClearCart(cartID string) error
}

type PlaceOrderInput struct {
	AddressID  *string
	CouponCode *string
}

// OrderService turns a customer's cart into an order and emits the
// order.placed event.
type OrderService struct {
	Repo      OrderRepository
	Publisher events.Publisher
}

func NewOrderService(repo OrderRepository, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderService{Repo: repo, Publisher: publisher}
}

// generateTransactionRef correlates the order to a payment transaction.
func generateTransactionRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder turns the customer's cart into an order: stock is locked and
// deducted, each line is snapshotted with its unit price, size and colour,
// an optional coupon is applied, and the cart is cleared. Everything runs
// in one transaction.
func (s *OrderService) PlaceOrder(customer *models.Customer, input PlaceOrderInput) (*models.Order, error) {
	cart, err := s.Repo.CartWithItems(customer.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	if input.AddressID != nil {
		ok, err := s.Repo.AddressBelongsTo(*input.AddressID, customer.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAddressUnknown
		}
	}

	var order *models.Order
	err = s.Repo.InTransaction(func(tx OrderRepository) error {
		total := decimal.Zero
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			product, err := tx.ProductForUpdate(item.ProductID)
			if err != nil {
				return err
			}

			if product.Inventory < item.Quantity {
				return ErrInsufficientStock
			}
			product.Inventory -= item.Quantity
			if err := tx.SaveProduct(product); err != nil {
				return err
			}

			if err := deductVariantStock(tx, &item); err != nil {
				return err
			}

			unit := product.DiscountPrice()
			if unit <= 0 {
				unit = product.Price
			}
			unitPrice, _ := decimal.NewFromFloat(unit).
				Add(decimal.NewFromFloat(item.ExtraPrice)).
				Round(2).Float64()

			item.Product = *product
			total = total.Add(decimal.NewFromFloat(item.TotalPrice()))

			snapshot := models.OrderItem{
				CustomerID: customer.ID,
				ProductID:  product.ID,
				Title:      product.Title,
				Quantity:   item.Quantity,
				UnitPrice:  unitPrice,
				Ordered:    true,
			}
			if item.Size != nil {
				snapshot.Size = item.Size.Title
			}
			if item.Colour != nil {
				snapshot.Colour = item.Colour.Name
			}
			orderItems = append(orderItems, snapshot)
		}

		if input.CouponCode != nil {
			discount, err := redeemCoupon(tx, *input.CouponCode)
			if err != nil {
				return err
			}
			total = total.Sub(decimal.NewFromFloat(discount))
			if total.IsNegative() {
				total = decimal.Zero
			}
		}

		totalPrice, _ := total.Round(2).Float64()
		order = &models.Order{
			CustomerID:     customer.ID,
			TransactionRef: generateTransactionRef(),
			PlacedAt:       time.Now(),
			TotalPrice:     totalPrice,
			AddressID:      input.AddressID,
			PaymentStatus:  models.PaymentStatusPending,
			ShippingStatus: models.ShippingStatusPending,
			Items:          orderItems,
		}
		if err := tx.CreateOrder(order); err != nil {
			return err
		}

		return tx.ClearCart(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishPlaced(order)
	return order, nil
}

func deductVariantStock(tx OrderRepository, item *models.CartItem) error {
	if item.SizeID != nil {
		inv, err := tx.SizeStockForUpdate(item.ProductID, *item.SizeID)
		if err != nil {
			return err
		}
		if inv.Quantity < item.Quantity {
			return ErrInsufficientStock
		}
		inv.Quantity -= item.Quantity
		if err := tx.SaveSizeStock(inv); err != nil {
			return err
		}
	}
	if item.ColourID != nil {
		inv, err := tx.ColourStockForUpdate(item.ProductID, *item.ColourID)
		if err != nil {
			return err
		}
		if inv.Quantity < item.Quantity {
			return ErrInsufficientStock
		}
		inv.Quantity -= item.Quantity
		if err := tx.SaveColourStock(inv); err != nil {
			return err
		}
	}
	return nil
}

func redeemCoupon(tx OrderRepository, code string) (float64, error) {
	coupon, err := tx.CouponByCode(code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrCouponNotLive
		}
		return 0, err
	}
	if !coupon.IsLive(time.Now()) {
		if !coupon.Expired {
			if err := tx.FlagCouponExpired(coupon); err != nil {
				return 0, err
			}
		}
		return 0, ErrCouponNotLive
	}
	return coupon.Price, nil
}

func (s *OrderService) publishPlaced(order *models.Order) {
	err := s.Publisher.Publish(context.Background(), "order.placed", map[string]any{
		"order_id":        order.ID,
		"customer_id":     order.CustomerID,
		"transaction_ref": order.TransactionRef,
		"total_price":     order.TotalPrice,
		"placed_at":       order.PlacedAt,
	})
	if err != nil {
		log.Printf("failed to publish order.placed for %s: %v", order.ID, err)
	}
}

// GormOrderRepository is the database-backed OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ OrderRepository = (*GormOrderRepository)(nil)

func (r *GormOrderRepository) CartWithItems(customerID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items.Product").Preload("Items.Size").Preload("Items.Colour").
		Where("customer_id = ?", customerID).First(&cart).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &cart, nil
}

func (r *GormOrderRepository) AddressBelongsTo(addressID, customerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Address{}).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) InTransaction(fn func(tx OrderRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormOrderRepository{db: tx})
	})
}

func (r *GormOrderRepository) ProductForUpdate(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &product, nil
}

func (r *GormOrderRepository) SaveProduct(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *GormOrderRepository) SizeStockForUpdate(productID, sizeID string) (*models.SizeInventory, error) {
	var inv models.SizeInventory
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "product_id = ? AND size_id = ?", productID, sizeID).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &inv, nil
}

func (r *GormOrderRepository) SaveSizeStock(inv *models.SizeInventory) error {
	return r.db.Save(inv).Error
}

func (r *GormOrderRepository) ColourStockForUpdate(productID, colourID string) (*models.ColourInventory, error) {
	var inv models.ColourInventory
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "product_id = ? AND colour_id = ?", productID, colourID).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &inv, nil
}

func (r *GormOrderRepository) SaveColourStock(inv *models.ColourInventory) error {
	return r.db.Save(inv).Error
}

func (r *GormOrderRepository) CouponByCode(code string) (*models.CouponCode, error) {
	var coupon models.CouponCode
	if err := r.db.First(&coupon, "code = ?", code).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &coupon, nil
}

func (r *GormOrderRepository) FlagCouponExpired(c *models.CouponCode) error {
	_, err := c.MarkIfExpired(r.db, time.Now())
	return err
}

func (r *GormOrderRepository) CreateOrder(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *GormOrderRepository) ClearCart(cartID string) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
