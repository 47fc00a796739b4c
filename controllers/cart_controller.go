package controllers

import (
	"net/http"

	"storefront/cart"
	"storefront/errs"
	"storefront/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sessionKey(c *gin.Context) string {
	if claims, ok := middleware.Claims(c); ok {
		return claims.UserID
	}
	return ""
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart": h.Carts.View(sessionKey(c))})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var body struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badBody(c)
		return
	}
	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		respondError(c, errs.Field("productId", "is not a valid id"))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.Catalog.Get(ctx, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	summary := h.Carts.Update(sessionKey(c), func(ct *cart.Cart) { ct.AddItem(product) })
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cart": summary})
}

// UpdateCart leaves the cart untouched for quantities below 1; removal is
// the DELETE route.
func (h *Handler) UpdateCart(c *gin.Context) {
	productID, ok := objectID(c, "productId")
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badBody(c)
		return
	}

	found := false
	summary := h.Carts.Update(sessionKey(c), func(ct *cart.Cart) {
		for _, l := range ct.Lines() {
			if l.ProductID == productID {
				found = true
			}
		}
		ct.UpdateQuantity(productID, body.Quantity)
	})
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in cart"})
		return
	}

	message := "Cart updated"
	if body.Quantity < 1 {
		message = "Quantity must be at least 1; cart unchanged"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "cart": summary})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, ok := objectID(c, "productId")
	if !ok {
		return
	}

	summary := h.Carts.Update(sessionKey(c), func(ct *cart.Cart) { ct.RemoveItem(productID) })
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart": summary})
}
