package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

// CanTransitionTo reports whether next moves the order forward along
// pending -> processing -> shipped -> delivered. Steps may be skipped but
// never reversed or repeated.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// OrderLine is the immutable snapshot of a cart line: the price is copied
// from the catalogue when the order is created and never updated afterwards.
type OrderLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     int64              `bson:"price" json:"price"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Items           []OrderLine        `bson:"items" json:"items"`
	TotalAmount     int64              `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderLineView is an order line with its product resolved for display. The
// product pointer is nil when the product has since been deleted from the
// catalogue; the snapshot price and quantity remain authoritative.
type OrderLineView struct {
	ProductID primitive.ObjectID `json:"productId"`
	Product   *Product           `json:"product,omitempty"`
	Quantity  int                `json:"quantity"`
	Price     int64              `json:"price"`
}

// OwnerSummary identifies the order's owner in admin listings.
type OwnerSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

type OrderView struct {
	ID              primitive.ObjectID `json:"id"`
	UserID          primitive.ObjectID `json:"userId"`
	Owner           *OwnerSummary      `json:"owner,omitempty"`
	Items           []OrderLineView    `json:"items"`
	TotalAmount     int64              `json:"totalAmount"`
	ShippingAddress string             `json:"shippingAddress"`
	Status          OrderStatus        `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
}
