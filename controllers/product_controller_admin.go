package controllers

import (
	"log"
	"net/http"

	"storefront/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProduct(c *gin.Context) {
	var input catalog.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.Catalog.Create(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	var input catalog.ProductPatch
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.Catalog.Update(ctx, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.Catalog.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "id": id.Hex()})
}

func (h *Handler) ExportProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.Catalog.All(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := catalog.WriteXLSX(c.Writer, products); err != nil {
		log.Printf("Failed to write product export: %v", err)
	}
}
