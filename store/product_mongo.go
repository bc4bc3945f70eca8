package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chandrashekar-chandu/nature-market/models"
)

type MongoProductStore struct {
	coll *mongo.Collection
}

func NewMongoProductStore(coll *mongo.Collection) *MongoProductStore {
	return &MongoProductStore{coll: coll}
}

func (s *MongoProductStore) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	_, err := s.coll.InsertOne(ctx, product)
	return err
}

func (s *MongoProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoProductStore) FindByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	return s.find(ctx, bson.M{"category": category})
}

func (s *MongoProductStore) SearchByName(ctx context.Context, query string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return s.find(ctx, bson.M{"name": pattern})
}

func (s *MongoProductStore) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProductStore) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": bson.M{
		"name":        product.Name,
		"price":       product.Price,
		"image":       product.Image,
		"category":    product.Category,
		"description": product.Description,
		"stock":       product.Stock,
		"updatedAt":   product.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
