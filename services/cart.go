package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/store"
)

// CartService mutates the cart embedded in the user aggregate. Every write
// is a single atomic document update in the store layer, so concurrent
// mutations for the same user cannot lose each other's change.
type CartService struct {
	users    store.UserStore
	products store.ProductStore
}

func NewCartService(users store.UserStore, products store.ProductStore) *CartService {
	return &CartService{users: users, products: products}
}

// addRetries bounds the increment/push loop in Add when concurrent adds for
// the same product keep invalidating each other's step.
const addRetries = 3

// Get returns the user's cart with each line's product resolved. Lines whose
// product has been removed from the catalogue are omitted from the view.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) ([]models.CartLineView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.Cart)
}

// Add puts quantity units of the product into the cart. Adding a product
// already present increments its line instead of duplicating it.
func (s *CartService) Add(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartLineView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidState)
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNoDocument) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	// Increment-then-push, where the push only matches when the product has
	// no line yet. A racing add that appends the line between the two steps
	// makes the push a no-op, and the retried increment lands on that line,
	// so the cart never holds two lines for one product.
	for attempt := 0; attempt < addRetries; attempt++ {
		matched, err := s.users.IncrementCartLine(ctx, userID, productID, quantity)
		if err != nil {
			return nil, err
		}
		if matched {
			return s.Get(ctx, userID)
		}
		line := models.CartLine{ProductID: productID, Quantity: quantity}
		pushed, err := s.users.PushCartLineIfAbsent(ctx, userID, line)
		if err != nil {
			return nil, err
		}
		if pushed {
			return s.Get(ctx, userID)
		}
		// Neither write matched: either the user is gone or another add
		// appended the line after our increment missed. Distinguish, then
		// retry the increment.
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNoDocument) {
				return nil, fmt.Errorf("%w: user", ErrNotFound)
			}
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: cart busy, retry the add", ErrConflict)
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line; setting a quantity on a line that is not in the
// cart is reported as not found.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartLineView, error) {
	if quantity <= 0 {
		if err := s.users.PullCartLine(ctx, userID, productID); err != nil {
			return nil, err
		}
		return s.Get(ctx, userID)
	}

	matched, err := s.users.SetCartLineQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("%w: item not in cart", ErrNotFound)
	}
	return s.Get(ctx, userID)
}

// Remove deletes the line for the product. Removing an absent line is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, productID primitive.ObjectID) ([]models.CartLineView, error) {
	if err := s.users.PullCartLine(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Clear unconditionally empties the cart.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.users.ClearCart(ctx, userID)
}

func (s *CartService) resolve(ctx context.Context, cart []models.CartLine) ([]models.CartLineView, error) {
	views := []models.CartLineView{}
	for _, line := range cart {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, store.ErrNoDocument) {
			continue
		}
		if err != nil {
			return nil, err
		}
		views = append(views, models.CartLineView{Product: *product, Quantity: line.Quantity})
	}
	return views, nil
}
