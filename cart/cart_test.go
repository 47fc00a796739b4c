package cart_test

import (
	"math/rand"
	"testing"

	"storefront/cart"
	"storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func product(name, price string) models.Product {
	return models.Product{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Images: []string{name + ".jpg"},
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	t.Parallel()

	c := cart.New(nil)
	mug := product("mug", "129.99")
	c.AddItem(mug)
	c.AddItem(mug)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "mug.jpg", lines[0].Image)
	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("259.98")))
}

func TestAddItemKeepsSnapshotPrice(t *testing.T) {
	t.Parallel()

	c := cart.New(nil)
	mug := product("mug", "10")
	c.AddItem(mug)

	mug.Price = decimal.RequireFromString("99")
	c.AddItem(mug)

	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(20)))
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	t.Parallel()

	c := cart.New(nil)
	mug := product("mug", "5")
	c.AddItem(mug)
	require.True(t, c.UpdateQuantity(mug.ID, 3))

	for _, q := range []int{0, -1} {
		assert.False(t, c.UpdateQuantity(mug.ID, q))
		assert.Equal(t, 3, c.Lines()[0].Quantity)
	}
	assert.False(t, c.UpdateQuantity(primitive.NewObjectID(), 4))
}

func TestRemoveItem(t *testing.T) {
	t.Parallel()

	c := cart.New(nil)
	mug, tee := product("mug", "5"), product("tee", "7")
	c.AddItem(mug)
	c.AddItem(tee)

	c.RemoveItem(mug.ID)
	c.RemoveItem(primitive.NewObjectID())

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, tee.ID, lines[0].ProductID)
}

func TestTotalIncludesShipping(t *testing.T) {
	t.Parallel()

	shipping := cart.FreeAbove(decimal.NewFromInt(100), decimal.NewFromInt(15))
	c := cart.New(shipping)
	assert.True(t, c.Total().IsZero())

	c.AddItem(product("mug", "40"))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(55)))

	c.AddItem(product("lamp", "60"))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(100)))
}

// Random sequences of mutations must keep subtotal equal to the sum over the
// surviving lines and total equal to subtotal plus shipping.
func TestRandomOperationsKeepTotalsConsistent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	catalog := []models.Product{
		product("a", "1.10"), product("b", "129.99"), product("c", "0"), product("d", "7.5"),
	}
	shipping := cart.FlatRate(decimal.NewFromInt(50000))
	c := cart.New(shipping)

	for i := 0; i < 500; i++ {
		p := catalog[rng.Intn(len(catalog))]
		switch rng.Intn(3) {
		case 0:
			c.AddItem(p)
		case 1:
			c.RemoveItem(p.ID)
		case 2:
			c.UpdateQuantity(p.ID, rng.Intn(6)-2)
		}

		want := decimal.Zero
		seen := map[primitive.ObjectID]bool{}
		for _, l := range c.Lines() {
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.False(t, seen[l.ProductID], "duplicate line")
			seen[l.ProductID] = true
			want = want.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		require.True(t, c.Subtotal().Equal(want))
		wantShipping := shipping(c.Subtotal())
		if c.Len() == 0 {
			wantShipping = decimal.Zero
		}
		require.True(t, c.Total().Equal(c.Subtotal().Add(wantShipping)))
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	c := cart.New(cart.FlatRate(decimal.NewFromInt(5)))
	empty := c.Summary()
	assert.NotNil(t, empty.Lines)
	assert.True(t, empty.Total.IsZero())

	c.AddItem(product("mug", "10"))
	s := c.Summary()
	assert.True(t, s.Subtotal.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.Shipping.Equal(decimal.NewFromInt(5)))
	assert.True(t, s.Total.Equal(decimal.NewFromInt(15)))
}

func TestShippingChargedOnZeroPricedLines(t *testing.T) {
	t.Parallel()

	c := cart.New(cart.FlatRate(decimal.NewFromInt(50000)))
	assert.True(t, c.ShippingCost(c.Subtotal()).IsZero(), "empty cart ships free")

	c.AddItem(product("sample", "0"))
	s := c.Summary()
	assert.True(t, s.Subtotal.IsZero())
	assert.True(t, s.Shipping.Equal(decimal.NewFromInt(50000)))
	assert.True(t, s.Total.Equal(decimal.NewFromInt(50000)))

	c.Clear()
	assert.True(t, c.Summary().Shipping.IsZero())
}
