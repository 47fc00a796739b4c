package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(validTransitions[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentOnDelivery   PaymentMethod = "pay_on_delivery"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// OrderItem is copied from the cart at checkout. Later catalog edits never
// reach it.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     decimal.Decimal    `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

type StatusChange struct {
	Status OrderStatus `bson:"status" json:"status"`
	At     time.Time   `bson:"at" json:"at"`
}

type Order struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Reference      string              `bson:"reference" json:"reference"`
	UserID         *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	FullName       string              `bson:"fullName" json:"fullName"`
	Email          string              `bson:"email" json:"email"`
	Phone          string              `bson:"phone" json:"phone"`
	Address        string              `bson:"address" json:"address"`
	State          string              `bson:"state" json:"state"`
	LGA            string              `bson:"lga" json:"lga"`
	Notes          string              `bson:"notes,omitempty" json:"notes,omitempty"`
	PaymentMethod  PaymentMethod       `bson:"paymentMethod" json:"paymentMethod"`
	Items          []OrderItem         `bson:"cartItems" json:"cartItems"`
	Subtotal       decimal.Decimal     `bson:"subtotal" json:"subtotal"`
	Shipping       decimal.Decimal     `bson:"shipping" json:"shipping"`
	Total          decimal.Decimal     `bson:"total" json:"total"`
	Status         OrderStatus         `bson:"status" json:"status"`
	StatusHistory  []StatusChange      `bson:"statusHistory" json:"statusHistory"`
	IdempotencyKey string              `bson:"idempotencyKey,omitempty" json:"-"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
