// Package cart is the shopper's working selection: one line per product with
// the name, price and image captured when the product was added.
package cart

import (
	"storefront/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Line struct {
	ProductID primitive.ObjectID `json:"productId"`
	Name      string             `json:"name"`
	Price     decimal.Decimal    `json:"price"`
	Image     string             `json:"image,omitempty"`
	Quantity  int                `json:"quantity"`
}

func (l Line) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Summary struct {
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Cart is not safe for concurrent use; Sessions serializes access.
type Cart struct {
	lines    []Line
	shipping ShippingFunc
}

func New(shipping ShippingFunc) *Cart {
	if shipping == nil {
		shipping = FlatRate(decimal.Zero)
	}
	return &Cart{shipping: shipping}
}

// AddItem snapshots p into the cart, or bumps the quantity of its existing line.
func (c *Cart) AddItem(p models.Product) {
	c.AddLine(Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image(),
		Quantity:  1,
	})
}

// AddLine merges l into the line for the same product, keeping the
// first snapshot. Lines with a quantity below 1 are ignored.
func (c *Cart) AddLine(l Line) {
	if l.Quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == l.ProductID {
			c.lines[i].Quantity += l.Quantity
			return
		}
	}
	c.lines = append(c.lines, l)
}

func (c *Cart) RemoveItem(productID primitive.ObjectID) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// UpdateQuantity reports whether a line was changed. Quantities below 1 are
// refused; removal goes through RemoveItem.
func (c *Cart) UpdateQuantity(productID primitive.ObjectID, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Amount())
	}
	return sum
}

// ShippingCost is zero for an empty cart, otherwise the configured policy.
func (c *Cart) ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if len(c.lines) == 0 {
		return decimal.Zero
	}
	return c.shipping(subtotal)
}

func (c *Cart) Total() decimal.Decimal {
	subtotal := c.Subtotal()
	return subtotal.Add(c.ShippingCost(subtotal))
}

func (c *Cart) Summary() Summary {
	subtotal := c.Subtotal()
	shipping := c.ShippingCost(subtotal)
	return Summary{
		Lines:    c.Lines(),
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
