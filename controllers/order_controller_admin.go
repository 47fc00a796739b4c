package controllers

import (
	"net/http"
	"strconv"

	"storefront/errs"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetOrdersAdmin(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, errs.Field("limit", "must be a whole number"))
			return
		}
		limit = n
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.Orders.List(ctx, c.Query("status"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "orders": orders})
}

func (h *Handler) GetOrderByIDAdmin(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.Orders.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "order": order})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.Orders.UpdateStatus(ctx, id, body.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
