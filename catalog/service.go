// Package catalog serves the product listing and the administrative create,
// update and delete paths.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/errs"
	"storefront/models"
	"storefront/store"
	"storefront/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxListLimit = 200

type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Slug        string          `json:"slug" validate:"omitempty,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images" validate:"dive,required"`
}

type ProductPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Slug        *string          `json:"slug" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Images      *[]string        `json:"images"`
}

type Service struct {
	products store.ProductStore
}

func NewService(products store.ProductStore) *Service {
	return &Service{products: products}
}

func (s *Service) List(ctx context.Context, name string, limit int) ([]models.Product, error) {
	if limit < 0 {
		return nil, errs.Field("limit", "must not be negative")
	}
	if limit == 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.products.ListProducts(ctx, store.ProductFilter{Name: strings.TrimSpace(name), Limit: limit})
}

// All returns every product, newest first, with no page cap.
func (s *Service) All(ctx context.Context) ([]models.Product, error) {
	return s.products.ListProducts(ctx, store.ProductFilter{})
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	return s.products.GetProductBySlug(ctx, slug)
}

func (s *Service) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return models.Product{}, err
	}
	if in.Price.IsNegative() {
		return models.Product{}, errs.Field("price", "must not be negative")
	}

	base := Slugify(in.Slug)
	if base == "" {
		base = Slugify(in.Name)
	}
	if base == "" {
		base = "product-" + strings.ToLower(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	slug, err := s.freeSlug(ctx, base)
	if err != nil {
		return models.Product{}, err
	}

	now := time.Now()
	product := models.Product{
		Slug:        slug,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      append([]string{}, in.Images...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.CreateProduct(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in ProductPatch) (models.Product, error) {
	if err := validation.Struct(in); err != nil {
		return models.Product{}, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return models.Product{}, errs.Field("price", "must not be negative")
	}

	update := store.ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
	}
	if in.Slug != nil {
		slug := Slugify(*in.Slug)
		if slug == "" {
			return models.Product{}, errs.Field("slug", "must contain letters or digits")
		}
		update.Slug = &slug
	}
	return s.products.UpdateProduct(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.products.DeleteProduct(ctx, id)
}

// freeSlug appends -2, -3, ... to base until no product uses it. The unique
// index still has the final word if two creates race.
func (s *Service) freeSlug(ctx context.Context, base string) (string, error) {
	for n := 1; n <= 100; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		_, err := s.products.GetProductBySlug(ctx, candidate)
		if errs.Is(err, errs.KindNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errs.Conflict("Too many products share this slug")
}
