package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartItemTotalPrice(t *testing.T) {
	tests := []struct {
		name     string
		item     CartItem
		expected float64
	}{
		{
			name: "discounted product with shipping and surcharge",
			item: CartItem{
				Product: Product{
					Price:         100,
					PercentageOff: 10,
					ShippingFee:   5,
				},
				Quantity:   3,
				ExtraPrice: 2,
			},
			// discount price 90: 90*3 + 5*3 + 2*3
			expected: 291,
		},
		{
			name: "no discount falls back to list price",
			item: CartItem{
				Product:  Product{Price: 40, ShippingFee: 2.5},
				Quantity: 2,
			},
			expected: 85,
		},
		{
			name: "single unit, no extras",
			item: CartItem{
				Product:  Product{Price: 19.99},
				Quantity: 1,
			},
			expected: 19.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.TotalPrice())
		})
	}
}

func TestCartTotalPrice(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{
				Product:    Product{Price: 100, PercentageOff: 10, ShippingFee: 5},
				Quantity:   3,
				ExtraPrice: 2,
			},
			{
				Product:  Product{Price: 40, ShippingFee: 2.5},
				Quantity: 2,
			},
		},
	}
	assert.Equal(t, 376.0, cart.TotalPrice())
}

func TestCartTotalPriceEmpty(t *testing.T) {
	assert.Equal(t, 0.0, (&Cart{}).TotalPrice())
}
