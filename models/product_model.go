package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the fixed set of catalogue sections.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryDairy      Category = "dairy"
	CategoryIcecream   Category = "icecream"
	CategoryGeneral    Category = "general"
)

var Categories = []Category{CategoryVegetables, CategoryDairy, CategoryIcecream, CategoryGeneral}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultStock is applied when a product is created without an explicit stock.
const DefaultStock = 100

// Product prices are integer minor currency units, never floats.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Price       int64              `bson:"price" json:"price" validate:"gte=0"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    Category           `bson:"category" json:"category" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
