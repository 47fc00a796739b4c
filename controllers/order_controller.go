package controllers

import (
	"net/http"

	"storefront/cart"
	"storefront/middleware"
	"storefront/orders"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmitOrder places an order from the posted cart items. A signed-in shopper
// who posts no items checks out their session cart instead.
func (h *Handler) SubmitOrder(c *gin.Context) {
	var input orders.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c)
		return
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		input.IdempotencyKey = key
	}

	cartKey := ""
	var taken []cart.Line
	if claims, ok := middleware.Claims(c); ok {
		if userID, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			input.UserID = &userID
		}
		if len(input.CartItems) == 0 {
			cartKey = claims.UserID
			taken = h.Carts.Take(cartKey).Lines
			input.CartItems = cartItems(taken)
		}
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, replayed, err := h.Orders.Submit(ctx, input)
	if err != nil {
		if cartKey != "" {
			h.Carts.Restore(cartKey, taken)
		}
		respondError(c, err)
		return
	}

	if replayed {
		c.JSON(http.StatusOK, gin.H{"message": "Order already placed", "order": order})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

func cartItems(lines []cart.Line) []orders.CartItemInput {
	items := make([]orders.CartItemInput, 0, len(lines))
	for _, l := range lines {
		price := l.Price
		items = append(items, orders.CartItemInput{
			ProductID: l.ProductID.Hex(),
			Name:      l.Name,
			Price:     &price,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}
	return items
}
