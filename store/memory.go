package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/errs"
	"storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory keeps everything in process. It backs STORE_DRIVER=memory for local
// runs and the HTTP tests.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]models.User // by lowercased email
	products map[primitive.ObjectID]models.Product
	orders   map[primitive.ObjectID]models.Order
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		products: make(map[primitive.ObjectID]models.Product),
		orders:   make(map[primitive.ObjectID]models.Order),
	}
}

func (m *Memory) ListProducts(_ context.Context, f ProductFilter) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(f.Name)
	products := []models.Product{}
	for _, p := range m.products {
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			products = append(products, cloneProduct(p))
		}
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID.Hex() > products[j].ID.Hex()
		}
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if f.Limit > 0 && len(products) > f.Limit {
		products = products[:f.Limit]
	}
	return products, nil
}

func (m *Memory) GetProduct(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return models.Product{}, errs.NotFound(productNotFound)
	}
	return cloneProduct(p), nil
}

func (m *Memory) GetProductBySlug(_ context.Context, slug string) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.Slug == slug {
			return cloneProduct(p), nil
		}
	}
	return models.Product{}, errs.NotFound(productNotFound)
}

func (m *Memory) CreateProduct(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.slugTaken(p.Slug, primitive.NilObjectID) {
		return errs.Conflict(slugTaken)
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = cloneProduct(*p)
	return nil
}

func (m *Memory) UpdateProduct(_ context.Context, id primitive.ObjectID, u ProductUpdate) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return models.Product{}, errs.NotFound(productNotFound)
	}
	if u.Slug != nil {
		if m.slugTaken(*u.Slug, id) {
			return models.Product{}, errs.Conflict(slugTaken)
		}
		p.Slug = *u.Slug
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Images != nil {
		p.Images = append([]string(nil), (*u.Images)...)
	}
	p.UpdatedAt = time.Now()
	m.products[id] = p
	return cloneProduct(p), nil
}

func (m *Memory) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return errs.NotFound(productNotFound)
	}
	delete(m.products, id)
	return nil
}

func (m *Memory) slugTaken(slug string, except primitive.ObjectID) bool {
	for id, p := range m.products {
		if p.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return models.User{}, errs.NotFound("User not found")
	}
	return u, nil
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := m.users[u.Email]; exists {
		return errs.Conflict("Email already registered")
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.Email] = *u
	return nil
}

func (m *Memory) CreateOrder(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.orders {
		if o.IdempotencyKey != "" && existing.IdempotencyKey == o.IdempotencyKey {
			return errs.Conflict(orderDuplicate)
		}
		if existing.Reference == o.Reference {
			return errs.Conflict(orderDuplicate)
		}
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	m.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (m *Memory) GetOrder(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, errs.NotFound(orderNotFound)
	}
	return cloneOrder(o), nil
}

func (m *Memory) FindOrderByIdempotencyKey(_ context.Context, key string) (models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, o := range m.orders {
		if key != "" && o.IdempotencyKey == key {
			return cloneOrder(o), nil
		}
	}
	return models.Order{}, errs.NotFound(orderNotFound)
}

func (m *Memory) ListOrders(_ context.Context, f OrderFilter) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range m.orders {
		if f.Status == "" || o.Status == f.Status {
			orders = append(orders, cloneOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if f.Limit > 0 && len(orders) > f.Limit {
		orders = orders[:f.Limit]
	}
	return orders, nil
}

func (m *Memory) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, next models.OrderStatus, at time.Time) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, errs.NotFound(orderNotFound)
	}
	if !o.Status.CanTransitionTo(next) {
		return models.Order{}, illegalTransition(o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = at
	o.StatusHistory = append(append([]models.StatusChange(nil), o.StatusHistory...), models.StatusChange{Status: next, At: at})
	m.orders[id] = o
	return cloneOrder(o), nil
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	o.StatusHistory = append([]models.StatusChange(nil), o.StatusHistory...)
	if o.UserID != nil {
		id := *o.UserID
		o.UserID = &id
	}
	return o
}
