// Package store persists products, users and orders. Implementations return
// errs.NotFound for lookup misses and errs.Conflict for duplicate unique keys.
package store

import (
	"context"
	"time"

	"storefront/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductFilter struct {
	Name  string // case-insensitive substring
	Limit int    // 0 means no limit
}

// ProductUpdate changes only the non-nil fields.
type ProductUpdate struct {
	Slug        *string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Images      *[]string
}

type OrderFilter struct {
	Status models.OrderStatus
	Limit  int
}

type ProductStore interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, u ProductUpdate) (models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

// OrderStore is append-only: orders are never deleted and only their status
// moves, along the transitions models.OrderStatus allows.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	FindOrderByIdempotencyKey(ctx context.Context, key string) (models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, next models.OrderStatus, at time.Time) (models.Order, error)
}
