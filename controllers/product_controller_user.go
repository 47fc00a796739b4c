package controllers

import (
	"net/http"
	"strconv"

	"storefront/errs"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProductsPublic(c *gin.Context) {
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

	products, err := h.Catalog.List(ctx, c.Query("name"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) GetProductBySlug(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.Catalog.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
