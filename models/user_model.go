package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CartLine stores a product reference only; prices are read from the
// catalogue at display and checkout time.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// User is the aggregate owning the cart. CartVersion is bumped by every cart
// write and checked by checkout so two concurrent checkouts cannot both
// consume the same cart snapshot.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Password    string             `bson:"password" json:"-" validate:"required,min=6"`
	Role        Role               `bson:"role" json:"role"`
	Cart        []CartLine         `bson:"cart" json:"cart"`
	CartVersion int64              `bson:"cartVersion" json:"-"`
}

// CartLineView is a cart line with its product resolved for display.
type CartLineView struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
