// Package store holds the persistence interfaces consumed by the service
// layer and their MongoDB implementations. Cart writes are single-document
// atomic operators rather than read-modify-write of the whole user, so two
// concurrent mutations cannot lose each other's update.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/models"
)

// ErrNoDocument is returned when a referenced entity does not exist.
var ErrNoDocument = errors.New("store: no document")

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// IncrementCartLine adds delta to the quantity of the user's line for
	// productID. It reports false when no such line exists.
	IncrementCartLine(ctx context.Context, userID, productID primitive.ObjectID, delta int) (bool, error)
	// PushCartLineIfAbsent appends a new line to the user's cart only when
	// no line for the product exists yet, so a racing add cannot produce
	// two lines for the same product. It reports false when the line is
	// already present or the user does not exist.
	PushCartLineIfAbsent(ctx context.Context, userID primitive.ObjectID, line models.CartLine) (bool, error)
	// SetCartLineQuantity replaces the quantity of an existing line. It
	// reports false when the user has no line for productID.
	SetCartLineQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (bool, error)
	// PullCartLine removes the line for productID; removing an absent line
	// is not an error.
	PullCartLine(ctx context.Context, userID, productID primitive.ObjectID) error
	// ClearCart unconditionally empties the user's cart.
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
	// ClearCartIfVersion empties the cart only when the stored cartVersion
	// still equals version. It reports false when the version has moved on.
	ClearCartIfVersion(ctx context.Context, userID primitive.ObjectID, version int64) (bool, error)
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
	SearchByName(ctx context.Context, query string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	// Delete removes an order. Orders are never deleted once placed; this
	// exists solely to compensate an order write whose checkout lost the
	// cart-version check on a non-transactional deployment.
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// FindByUser returns the user's orders, newest first.
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]models.Order, error)
	// UpdateStatus transitions the order's status from one value to another.
	// It reports false when the order's current status is no longer "from",
	// so a racing transition cannot be applied twice.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus) (bool, error)
}

// TxnRunner executes fn inside a storage transaction where the deployment
// supports one. Implementations must roll back every write made through the
// transaction context when fn returns an error.
type TxnRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTxn runs fn directly, for standalone MongoDB deployments (no replica
// set, so no multi-document transactions) and for tests.
type NoTxn struct{}

func (NoTxn) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
