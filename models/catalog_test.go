package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductDiscountPrice(t *testing.T) {
	tests := []struct {
		name          string
		price         float64
		percentageOff int
		expected      float64
	}{
		{
			name:          "ten percent off",
			price:         100,
			percentageOff: 10,
			expected:      90,
		},
		{
			name:          "no discount returns zero",
			price:         100,
			percentageOff: 0,
			expected:      0,
		},
		{
			name:          "result rounded to two decimals",
			price:         19.99,
			percentageOff: 15,
			expected:      16.99,
		},
		{
			name:          "odd percentage",
			price:         49.95,
			percentageOff: 33,
			expected:      33.47,
		},
		{
			name:          "full discount",
			price:         25,
			percentageOff: 100,
			expected:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, PercentageOff: tt.percentageOff}
			assert.Equal(t, tt.expected, p.DiscountPrice())
		})
	}
}

func TestAverageOf(t *testing.T) {
	assert.Equal(t, 4.0, AverageOf([]int{3, 4, 5}))
	assert.Equal(t, 0.0, AverageOf(nil))
	assert.Equal(t, 0.0, AverageOf([]int{}))
	assert.InDelta(t, 3.5, AverageOf([]int{3, 4}), 1e-9)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Denim Jacket", "denim-jacket"},
		{"  Summer   Dress  ", "summer-dress"},
		{"V-Neck T-Shirt (Blue)", "v-neck-t-shirt-blue"},
		{"Hoodie 2.0", "hoodie-2-0"},
		{"CARGO PANTS", "cargo-pants"},
		// Distinct titles that collapse to the same slug.
		{"Crew Neck", "crew-neck"},
		{"Crew-Neck", "crew-neck"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slugify(tt.title), "title %q", tt.title)
	}
}
