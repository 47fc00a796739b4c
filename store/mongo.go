package store

import (
	"errors"
	"fmt"

	"storefront/database"
	"storefront/errs"
	"storefront/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type Mongo struct {
	users    *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		users:    db.Collection(database.UsersCollection),
		products: db.Collection(database.ProductsCollection),
		orders:   db.Collection(database.OrdersCollection),
	}
}

func translate(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errs.NotFound(notFound)
	case mongo.IsDuplicateKeyError(err):
		return errs.Conflict(conflict)
	default:
		return errs.Internal(err, "database error")
	}
}

func illegalTransition(from, to models.OrderStatus) error {
	return errs.Conflict(fmt.Sprintf("Cannot change status from %s to %s", from, to))
}
