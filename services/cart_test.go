package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/models"
)

type cartFixture struct {
	users    *memUserStore
	products *memProductStore
	svc      *CartService
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		users:    newMemUserStore(),
		products: newMemProductStore(),
	}
	f.svc = NewCartService(f.users, f.products)
	return f
}

func TestAddAccumulatesQuantity(t *testing.T) {
	f := newCartFixture()
	product := seedProduct(t, f.products, "Carrots", 30)
	user := seedUser(t, f.users, "alice", models.RoleUser, nil)

	_, err := f.svc.Add(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)
	cart, err := f.svc.Add(context.Background(), user.ID, product.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart, 1, "adding the same product must not duplicate the line")
	assert.Equal(t, 5, cart[0].Quantity)
	assert.Equal(t, "Carrots", cart[0].Product.Name)
}

func TestAddDefaultsAndValidation(t *testing.T) {
	f := newCartFixture()
	product := seedProduct(t, f.products, "Butter", 80)
	user := seedUser(t, f.users, "bob", models.RoleUser, nil)

	_, err := f.svc.Add(context.Background(), user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.svc.Add(context.Background(), user.ID, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	cart, err := f.svc.Add(context.Background(), user.ID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestAddRacingFirstAddsKeepOneLine(t *testing.T) {
	f := newCartFixture()
	product := seedProduct(t, f.products, "Farm Eggs", 90)
	user := seedUser(t, f.users, "gina", models.RoleUser, nil)

	// The other shopper's add lands between this add's increment (which
	// misses, the cart is still empty) and its push. The push must then
	// refuse to append a second line and the retried increment folds the
	// quantity into the existing one.
	hooked := &hookedUserStore{memUserStore: f.users}
	hooked.afterIncrementMiss = func() {
		racer := NewCartService(f.users, f.products)
		_, err := racer.Add(context.Background(), user.ID, product.ID, 3)
		require.NoError(t, err)
	}
	svc := NewCartService(hooked, f.products)

	cart, err := svc.Add(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)

	require.Len(t, cart, 1, "racing first adds must not duplicate the line")
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	f := newCartFixture()
	product := seedProduct(t, f.products, "Fresh Milk", 60)
	user := seedUser(t, f.users, "carol", models.RoleUser, nil)

	_, err := f.svc.SetQuantity(context.Background(), user.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound, "setting a quantity on a missing line is reported, not upserted")

	_, err = f.svc.Add(context.Background(), user.ID, product.ID, 1)
	require.NoError(t, err)

	cart, err := f.svc.SetQuantity(context.Background(), user.ID, product.ID, 7)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 7, cart[0].Quantity, "set replaces, it does not increment")

	cart, err = f.svc.SetQuantity(context.Background(), user.ID, product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart, "zero quantity removes the line")

	// Removing an already absent line is a no-op, not an error.
	cart, err = f.svc.SetQuantity(context.Background(), user.ID, product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestRemoveIsIdempotent(t *testing.T) {
	f := newCartFixture()
	product := seedProduct(t, f.products, "Green Tea", 180)
	user := seedUser(t, f.users, "dave", models.RoleUser, nil)

	_, err := f.svc.Add(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)

	cart, err := f.svc.Remove(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	cart, err = f.svc.Remove(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestClearEmptiesCart(t *testing.T) {
	f := newCartFixture()
	p1 := seedProduct(t, f.products, "Organic Honey", 200)
	p2 := seedProduct(t, f.products, "Herbal Oil", 250)
	user := seedUser(t, f.users, "erin", models.RoleUser, []models.CartLine{
		{ProductID: p1.ID, Quantity: 1},
		{ProductID: p2.ID, Quantity: 2},
	})

	require.NoError(t, f.svc.Clear(context.Background(), user.ID))

	cart, err := f.svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestGetSkipsDeletedProducts(t *testing.T) {
	f := newCartFixture()
	product := seedProduct(t, f.products, "Cheese Block", 120)
	user := seedUser(t, f.users, "frank", models.RoleUser, []models.CartLine{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: primitive.NewObjectID(), Quantity: 4},
	})

	cart, err := f.svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "Cheese Block", cart[0].Product.Name)
}
