package store

import (
	"context"
	"regexp"
	"time"

	"storefront/errs"
	"storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productNotFound = "Product not found"
	slugTaken       = "Product slug already exists"
)

func (s *Mongo) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Name), Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, productNotFound, slugTaken)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, translate(err, productNotFound, slugTaken)
	}
	return products, nil
}

func (s *Mongo) GetProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, translate(err, productNotFound, slugTaken)
}

func (s *Mongo) GetProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	return product, translate(err, productNotFound, slugTaken)
}

func (s *Mongo) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.products.InsertOne(ctx, p)
	return translate(err, productNotFound, slugTaken)
}

func (s *Mongo) UpdateProduct(ctx context.Context, id primitive.ObjectID, u ProductUpdate) (models.Product, error) {
	set := bson.M{}
	if u.Slug != nil {
		set["slug"] = *u.Slug
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Images != nil {
		set["images"] = *u.Images
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err := s.products.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	return updated, translate(err, productNotFound, slugTaken)
}

func (s *Mongo) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, productNotFound, slugTaken)
	}
	if result.DeletedCount == 0 {
		return errs.NotFound(productNotFound)
	}
	return nil
}
