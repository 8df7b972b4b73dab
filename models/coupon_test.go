package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCouponCode(t *testing.T) {
	code, err := GenerateCouponCode()
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, "0123456789ABCDEF", string(r))
	}

	other, err := GenerateCouponCode()
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestCouponBeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		coupon  CouponCode
		wantErr error
	}{
		{
			name:   "future expiry accepted",
			coupon: CouponCode{Price: 10, ExpiryDate: time.Now().Add(time.Hour)},
		},
		{
			name:    "past expiry rejected",
			coupon:  CouponCode{Price: 10, ExpiryDate: time.Now().Add(-time.Minute)},
			wantErr: ErrCouponExpiryPast,
		},
		{
			name:    "boundary timestamp rejected",
			coupon:  CouponCode{Price: 10, ExpiryDate: time.Now()},
			wantErr: ErrCouponExpiryPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coupon.BeforeSave(nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCouponBeforeSaveGeneratesCode(t *testing.T) {
	c := CouponCode{Price: 5, ExpiryDate: time.Now().Add(time.Hour)}
	require.NoError(t, c.BeforeSave(nil))
	assert.Len(t, c.Code, 8)

	// An explicit code is kept as-is.
	c2 := CouponCode{Code: "DEADBEEF", Price: 5, ExpiryDate: time.Now().Add(time.Hour)}
	require.NoError(t, c2.BeforeSave(nil))
	assert.Equal(t, "DEADBEEF", c2.Code)
}

func TestCouponMarkIfExpired(t *testing.T) {
	now := time.Now()

	t.Run("already flagged coupon is left alone", func(t *testing.T) {
		c := CouponCode{Expired: true, ExpiryDate: now.Add(-time.Hour)}
		changed, err := c.MarkIfExpired(nil, now)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("live coupon is left alone", func(t *testing.T) {
		c := CouponCode{ExpiryDate: now.Add(time.Hour)}
		changed, err := c.MarkIfExpired(nil, now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.False(t, c.Expired)
	})
}

func TestCouponIsLive(t *testing.T) {
	now := time.Now()
	live := CouponCode{ExpiryDate: now.Add(time.Minute)}
	assert.True(t, live.IsLive(now))

	overdue := CouponCode{ExpiryDate: now.Add(-time.Minute)}
	assert.False(t, overdue.IsLive(now))

	flagged := CouponCode{Expired: true, ExpiryDate: now.Add(time.Minute)}
	assert.False(t, flagged.IsLive(now))
}
