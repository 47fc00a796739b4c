package store

import (
	"context"
	"time"

	"storefront/errs"
	"storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	orderNotFound  = "Order not found"
	orderDuplicate = "Order already submitted"
)

func (s *Mongo) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := s.orders.InsertOne(ctx, o)
	return translate(err, orderNotFound, orderDuplicate)
}

func (s *Mongo) GetOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	return order, translate(err, orderNotFound, orderDuplicate)
}

func (s *Mongo) FindOrderByIdempotencyKey(ctx context.Context, key string) (models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"idempotencyKey": key}).Decode(&order)
	return order, translate(err, orderNotFound, orderDuplicate)
}

func (s *Mongo) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := s.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, orderNotFound, orderDuplicate)
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, translate(err, orderNotFound, orderDuplicate)
	}
	return orders, nil
}

// UpdateOrderStatus moves the order only if its status is still the one the
// transition was checked against.
func (s *Mongo) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, next models.OrderStatus, at time.Time) (models.Order, error) {
	current, err := s.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !current.Status.CanTransitionTo(next) {
		return models.Order{}, illegalTransition(current.Status, next)
	}

	filter := bson.M{"_id": id, "status": current.Status}
	update := bson.M{
		"$set":  bson.M{"status": next, "updatedAt": at},
		"$push": bson.M{"statusHistory": models.StatusChange{Status: next, At: at}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err = s.orders.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, errs.Conflict("Order status changed concurrently, reload and retry")
	}
	return updated, translate(err, orderNotFound, orderDuplicate)
}
