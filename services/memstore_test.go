package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/store"
)

// In-memory store implementations mirroring the Mongo stores' contracts,
// including the version bump on every cart write.

type memUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func copyUser(u *models.User) *models.User {
	out := *u
	out.Cart = append([]models.CartLine{}, u.Cart...)
	return &out
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Cart == nil {
		user.Cart = []models.CartLine{}
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNoDocument
	}
	return copyUser(user), nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, store.ErrNoDocument
}

func (s *memUserStore) IncrementCartLine(_ context.Context, userID, productID primitive.ObjectID, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity += delta
			user.CartVersion++
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) PushCartLineIfAbsent(_ context.Context, userID primitive.ObjectID, line models.CartLine) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	for _, existing := range user.Cart {
		if existing.ProductID == line.ProductID {
			return false, nil
		}
	}
	user.Cart = append(user.Cart, line)
	user.CartVersion++
	return true, nil
}

func (s *memUserStore) SetCartLineQuantity(_ context.Context, userID, productID primitive.ObjectID, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity = quantity
			user.CartVersion++
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) PullCartLine(_ context.Context, userID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil
	}
	kept := user.Cart[:0]
	for _, line := range user.Cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	user.Cart = kept
	user.CartVersion++
	return nil
}

func (s *memUserStore) ClearCart(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.Cart = []models.CartLine{}
		user.CartVersion++
	}
	return nil
}

func (s *memUserStore) ClearCartIfVersion(_ context.Context, userID primitive.ObjectID, version int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok || user.CartVersion != version {
		return false, nil
	}
	user.Cart = []models.CartLine{}
	user.CartVersion++
	return true, nil
}

type memProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[primitive.ObjectID]*models.Product{}}
}

func (s *memProductStore) Create(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *memProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrNoDocument
	}
	copied := *product
	return &copied, nil
}

func (s *memProductStore) FindAll(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, product := range s.products {
		out = append(out, *product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memProductStore) FindByCategory(_ context.Context, category models.Category) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, product := range s.products {
		if product.Category == category {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (s *memProductStore) SearchByName(_ context.Context, query string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, product := range s.products {
		if strings.Contains(strings.ToLower(product.Name), strings.ToLower(query)) {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (s *memProductStore) Update(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return store.ErrNoDocument
	}
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *memProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return store.ErrNoDocument
	}
	delete(s.products, id)
	return nil
}

type memOrderStore struct {
	mu     sync.Mutex
	orders []*models.Order
}

func newMemOrderStore() *memOrderStore { return &memOrderStore{} }

func (s *memOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	copied := *order
	copied.Items = append([]models.OrderLine{}, order.Items...)
	s.orders = append(s.orders, &copied)
	return nil
}

func (s *memOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.orders[:0]
	for _, order := range s.orders {
		if order.ID != id {
			kept = append(kept, order)
		}
	}
	s.orders = kept
	return nil
}

func (s *memOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			copied := *order
			copied.Items = append([]models.OrderLine{}, order.Items...)
			return &copied, nil
		}
	}
	return nil, store.ErrNoDocument
}

func (s *memOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *memOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, order := range s.orders {
		out = append(out, *order)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
}

func (s *memOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to models.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id && order.Status == from {
			order.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (s *memOrderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// memTxn mimics a rolling-back transaction: when fn fails, the order store
// is restored to its pre-transaction contents.
type memTxn struct {
	orders *memOrderStore
}

func (t memTxn) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	t.orders.mu.Lock()
	snapshot := append([]*models.Order{}, t.orders.orders...)
	t.orders.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.orders.mu.Lock()
		t.orders.orders = snapshot
		t.orders.mu.Unlock()
		return err
	}
	return nil
}

// hookedUserStore lets a test interleave a concurrent cart write at a chosen
// point: after checkout's snapshot read, or after an add's increment misses.
// Each hook fires once.
type hookedUserStore struct {
	*memUserStore
	afterFind          func()
	afterIncrementMiss func()
}

func (h *hookedUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := h.memUserStore.FindByID(ctx, id)
	if h.afterFind != nil {
		hook := h.afterFind
		h.afterFind = nil
		hook()
	}
	return user, err
}

func (h *hookedUserStore) IncrementCartLine(ctx context.Context, userID, productID primitive.ObjectID, delta int) (bool, error) {
	matched, err := h.memUserStore.IncrementCartLine(ctx, userID, productID, delta)
	if err == nil && !matched && h.afterIncrementMiss != nil {
		hook := h.afterIncrementMiss
		h.afterIncrementMiss = nil
		hook()
	}
	return matched, err
}

func seedProduct(t interface{ Fatalf(string, ...interface{}) }, products *memProductStore, name string, price int64) models.Product {
	product := models.Product{
		Name:        name,
		Price:       price,
		Category:    models.CategoryGeneral,
		Description: name,
		Stock:       models.DefaultStock,
		CreatedAt:   time.Now(),
	}
	if err := products.Create(context.Background(), &product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedUser(t interface{ Fatalf(string, ...interface{}) }, users *memUserStore, name string, role models.Role, cart []models.CartLine) models.User {
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
		Cart:     cart,
	}
	if err := users.Create(context.Background(), &user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
