// Package orders turns a cart plus the checkout form into a durable order and
// drives the administrative status changes afterwards.
package orders

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/cart"
	"storefront/errs"
	"storefront/events"
	"storefront/models"
	"storefront/store"
	"storefront/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxListLimit = 500

type CartItemInput struct {
	ProductID string           `json:"productId" validate:"required"`
	Name      string           `json:"name" validate:"required"`
	Price     *decimal.Decimal `json:"price" validate:"required"`
	Quantity  int              `json:"quantity" validate:"min=1"`
	Image     string           `json:"image"`
}

// SubmitInput mirrors the checkout form. Subtotal, Shipping and Total are what
// the client displayed; they are never stored.
type SubmitInput struct {
	FullName       string               `json:"fullName" validate:"required,max=200"`
	Email          string               `json:"email" validate:"required,email"`
	Phone          string               `json:"phone" validate:"required,max=32"`
	Address        string               `json:"address" validate:"required,max=500"`
	State          string               `json:"state" validate:"required,max=100"`
	LGA            string               `json:"lga" validate:"required,max=100"`
	Notes          string               `json:"notes" validate:"max=2000"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod" validate:"required,oneof=pay_on_delivery bank_transfer"`
	CartItems      []CartItemInput      `json:"cartItems" validate:"required,min=1,dive"`
	Subtotal       *decimal.Decimal     `json:"subtotal"`
	Shipping       *decimal.Decimal     `json:"shipping"`
	Total          *decimal.Decimal     `json:"total"`
	IdempotencyKey string               `json:"idempotencyKey" validate:"max=128"`
	UserID         *primitive.ObjectID  `json:"-"`
}

type Service struct {
	orders    store.OrderStore
	shipping  cart.ShippingFunc
	publisher events.Publisher
	now       func() time.Time
}

func NewService(orders store.OrderStore, shipping cart.ShippingFunc, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Fanout{}
	}
	return &Service{orders: orders, shipping: shipping, publisher: publisher, now: time.Now}
}

// Submit validates the form, recomputes every amount from the line items and
// inserts a pending order. The bool reports a replay of an earlier submission
// with the same idempotency key.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (models.Order, bool, error) {
	normalize(&in)
	if err := validation.Struct(in); err != nil {
		return models.Order{}, false, err
	}

	if in.IdempotencyKey != "" {
		existing, err := s.orders.FindOrderByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil {
			return existing, true, nil
		}
		if !errs.Is(err, errs.KindNotFound) {
			return models.Order{}, false, err
		}
	}

	c, err := s.buildCart(in.CartItems)
	if err != nil {
		return models.Order{}, false, err
	}
	summary := c.Summary()
	if in.Total != nil && !in.Total.Equal(summary.Total) {
		log.Printf("Checkout total mismatch: client %s, server %s", in.Total, summary.Total)
	}

	now := s.now()
	order := models.Order{
		Reference:      newReference(now),
		UserID:         in.UserID,
		FullName:       in.FullName,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		State:          in.State,
		LGA:            in.LGA,
		Notes:          in.Notes,
		PaymentMethod:  in.PaymentMethod,
		Items:          orderItems(summary.Lines),
		Subtotal:       summary.Subtotal,
		Shipping:       summary.Shipping,
		Total:          summary.Total,
		Status:         models.OrderStatusPending,
		StatusHistory:  []models.StatusChange{{Status: models.OrderStatusPending, At: now}},
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orders.CreateOrder(ctx, &order); err != nil {
		// A concurrent submit with the same key won the insert.
		if in.IdempotencyKey != "" && errs.Is(err, errs.KindConflict) {
			existing, findErr := s.orders.FindOrderByIdempotencyKey(ctx, in.IdempotencyKey)
			if findErr == nil {
				return existing, true, nil
			}
		}
		return models.Order{}, false, err
	}

	_ = s.publisher.Publish(ctx, events.OrderCreated(order))
	return order, false, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, limit int) ([]models.Order, error) {
	filter := store.OrderFilter{Limit: limit}
	if status != "" {
		filter.Status = models.OrderStatus(status)
		if !filter.Status.Valid() {
			return nil, errs.Field("status", "is not a known order status")
		}
	}
	if limit < 0 {
		return nil, errs.Field("limit", "must not be negative")
	}
	if limit == 0 || limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.orders.ListOrders(ctx, filter)
}

// UpdateStatus applies an administrative transition. Terminal and illegal
// moves come back from the store as errs.Conflict.
func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Order, error) {
	next := models.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return models.Order{}, errs.Field("status", "must be one of: pending, processing, completed, cancelled")
	}

	order, err := s.orders.UpdateOrderStatus(ctx, id, next, s.now())
	if err != nil {
		return models.Order{}, err
	}
	_ = s.publisher.Publish(ctx, events.OrderStatusUpdated(order))
	return order, nil
}

func (s *Service) buildCart(items []CartItemInput) (*cart.Cart, error) {
	c := cart.New(s.shipping)
	for i, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, errs.Field(fmt.Sprintf("cartItems[%d].productId", i), "is not a valid id")
		}
		if item.Price.IsNegative() {
			return nil, errs.Field(fmt.Sprintf("cartItems[%d].price", i), "must not be negative")
		}
		c.AddLine(cart.Line{
			ProductID: id,
			Name:      item.Name,
			Price:     *item.Price,
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}
	return c, nil
}

func orderItems(lines []cart.Line) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}
	return items
}

func normalize(in *SubmitInput) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.State = strings.TrimSpace(in.State)
	in.LGA = strings.TrimSpace(in.LGA)
	in.Notes = strings.TrimSpace(in.Notes)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	for i := range in.CartItems {
		in.CartItems[i].Name = strings.TrimSpace(in.CartItems[i].Name)
	}
}

// newReference is human readable, e.g. ORD-20260102150405-1A2B3C4D.
func newReference(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + now.UTC().Format("20060102150405") + "-" + id[:8]
}
