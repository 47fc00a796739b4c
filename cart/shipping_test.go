package cart_test

import (
	"testing"

	"storefront/cart"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingPolicies(t *testing.T) {
	t.Parallel()

	fee := decimal.NewFromInt(2500)
	d := decimal.RequireFromString

	t.Run("flat rate", func(t *testing.T) {
		flat := cart.FlatRate(fee)
		assert.True(t, flat(decimal.Zero).Equal(fee))
		assert.True(t, flat(d("1")).Equal(fee))
		assert.True(t, flat(d("1000000")).Equal(fee))
	})

	t.Run("free above threshold", func(t *testing.T) {
		free := cart.FreeAbove(d("50000"), fee)
		assert.True(t, free(d("49999.99")).Equal(fee))
		assert.True(t, free(d("50000")).IsZero())
		assert.True(t, free(decimal.Zero).Equal(fee))
	})

	t.Run("policy selection", func(t *testing.T) {
		assert.True(t, cart.Policy(fee, decimal.Zero)(d("900000")).Equal(fee))
		assert.True(t, cart.Policy(fee, d("100"))(d("900000")).IsZero())
	})
}
