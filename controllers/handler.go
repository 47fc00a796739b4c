package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"storefront/auth"
	"storefront/cart"
	"storefront/catalog"
	"storefront/errs"
	"storefront/orders"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	Auth    *auth.Service
	Catalog *catalog.Service
	Orders  *orders.Service
	Carts   *cart.Sessions
	Cookie  CookieConfig
	Timeout time.Duration
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

var statusByKind = map[errs.Kind]int{
	errs.KindValidation:         http.StatusBadRequest,
	errs.KindNotFound:           http.StatusNotFound,
	errs.KindConflict:           http.StatusConflict,
	errs.KindInvalidCredentials: http.StatusBadRequest,
	errs.KindInternal:           http.StatusInternalServerError,
}

func respondError(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	if kind == errs.KindInternal {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	message, fields := errs.Public(err)
	body := gin.H{"message": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	c.JSON(statusByKind[kind], body)
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

func objectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		respondError(c, errs.Field(param, "is not a valid id"))
		return primitive.NilObjectID, false
	}
	return id, true
}
