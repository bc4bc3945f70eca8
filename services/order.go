package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/store"
)

// OrderService implements checkout and the order queries. Checkout snapshots
// catalogue prices into immutable order lines, totals them with the flat
// shipping fee, and clears the cart in the same transaction as the order
// write, guarded by the cart version read at the start.
type OrderService struct {
	users       store.UserStore
	products    store.ProductStore
	orders      store.OrderStore
	txn         store.TxnRunner
	shippingFee int64
	now         func() time.Time
}

func NewOrderService(users store.UserStore, products store.ProductStore, orders store.OrderStore, txn store.TxnRunner, shippingFee int64) *OrderService {
	return &OrderService{
		users:       users,
		products:    products,
		orders:      orders,
		txn:         txn,
		shippingFee: shippingFee,
		now:         time.Now,
	}
}

// PlaceOrder turns the user's cart into an order.
//
// Nothing is written until the whole cart resolves: a missing product aborts
// with not-found and leaves both cart and order store untouched. The cart
// clear is conditional on the cartVersion read with the snapshot, so a
// concurrent checkout or cart mutation aborts the transaction with a
// conflict instead of producing a second order from the same lines.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, shippingAddress string) (*models.OrderView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if len(user.Cart) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidState)
	}

	lines := make([]models.OrderLine, 0, len(user.Cart))
	resolved := make(map[primitive.ObjectID]models.Product, len(user.Cart))
	var total int64
	for _, item := range user.Cart {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNoDocument) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID.Hex())
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.OrderLine{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total += product.Price * int64(item.Quantity)
		resolved[product.ID] = *product
	}
	total += s.shippingFee

	order := &models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Items:           lines,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		Status:          models.OrderStatusPending,
		CreatedAt:       s.now(),
	}

	err = s.txn.Run(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
		cleared, err := s.users.ClearCartIfVersion(ctx, userID, user.CartVersion)
		if err != nil {
			return err
		}
		if !cleared {
			// Compensate the order write before reporting the conflict, so
			// the stray order does not survive on deployments without
			// multi-document transactions. Under a transactional runner the
			// abort would discard it anyway.
			if derr := s.orders.Delete(ctx, order.ID); derr != nil {
				slog.Error("failed to compensate conflicting order", "order", order.ID.Hex(), "error", derr)
			}
			return fmt.Errorf("%w: cart changed during checkout", ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := s.view(order, resolved, nil)
	return &view, nil
}

// ListForUser returns the user's orders, newest first, with products resolved.
func (s *OrderService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderView, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders, false)
}

// Get returns a single order. Only the owner or an admin may read it.
func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID, subject Subject) (*models.OrderView, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := Authorize(subject, order.UserID, ActionReadOrder); err != nil {
		return nil, err
	}
	view, err := s.resolveOne(ctx, order, false)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SetStatus transitions an order's delivery status. Admin only, and only
// forward along pending -> processing -> shipped -> delivered.
func (s *OrderService) SetStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus, subject Subject) (*models.OrderView, error) {
	if err := Authorize(subject, primitive.NilObjectID, ActionUpdateStatus); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidState, status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move %s order to %s", ErrInvalidState, order.Status, status)
	}

	applied, err := s.orders.UpdateStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("%w: status changed concurrently", ErrConflict)
	}

	order.Status = status
	return s.resolveOne(ctx, order, false)
}

// ListAll returns every order, newest first, with owner and products
// resolved. Admin only.
func (s *OrderService) ListAll(ctx context.Context, subject Subject) ([]models.OrderView, error) {
	if err := Authorize(subject, primitive.NilObjectID, ActionListAllOrders); err != nil {
		return nil, err
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders, true)
}

func (s *OrderService) resolveAll(ctx context.Context, orders []models.Order, withOwner bool) ([]models.OrderView, error) {
	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		view, err := s.resolveOne(ctx, &orders[i], withOwner)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *OrderService) resolveOne(ctx context.Context, order *models.Order, withOwner bool) (*models.OrderView, error) {
	products := make(map[primitive.ObjectID]models.Product, len(order.Items))
	for _, line := range order.Items {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		product, err := s.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, store.ErrNoDocument) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products[line.ProductID] = *product
	}

	var owner *models.OwnerSummary
	if withOwner {
		user, err := s.users.FindByID(ctx, order.UserID)
		if err != nil && !errors.Is(err, store.ErrNoDocument) {
			return nil, err
		}
		if user != nil {
			owner = &models.OwnerSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		}
	}

	view := s.view(order, products, owner)
	return &view, nil
}

func (s *OrderService) view(order *models.Order, products map[primitive.ObjectID]models.Product, owner *models.OwnerSummary) models.OrderView {
	items := make([]models.OrderLineView, 0, len(order.Items))
	for _, line := range order.Items {
		item := models.OrderLineView{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
		if product, ok := products[line.ProductID]; ok {
			p := product
			item.Product = &p
		}
		items = append(items, item)
	}
	return models.OrderView{
		ID:              order.ID,
		UserID:          order.UserID,
		Owner:           owner,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
	}
}
