package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chandrashekar-chandu/nature-market/models"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Cart == nil {
		user.Cart = []models.CartLine{}
	}
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) IncrementCartLine(ctx context.Context, userID, productID primitive.ObjectID, delta int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.productId": productID},
		bson.M{
			"$inc": bson.M{"cart.$.quantity": delta, "cartVersion": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoUserStore) PushCartLineIfAbsent(ctx context.Context, userID primitive.ObjectID, line models.CartLine) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.productId": bson.M{"$ne": line.ProductID}},
		bson.M{
			"$push": bson.M{"cart": line},
			"$inc":  bson.M{"cartVersion": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoUserStore) SetCartLineQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.productId": productID},
		bson.M{
			"$set": bson.M{"cart.$.quantity": quantity},
			"$inc": bson.M{"cartVersion": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoUserStore) PullCartLine(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"cart": bson.M{"productId": productID}},
			"$inc":  bson.M{"cartVersion": 1},
		},
	)
	return err
}

func (s *MongoUserStore) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$set": bson.M{"cart": []models.CartLine{}},
			"$inc": bson.M{"cartVersion": 1},
		},
	)
	return err
}

func (s *MongoUserStore) ClearCartIfVersion(ctx context.Context, userID primitive.ObjectID, version int64) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "cartVersion": version},
		bson.M{
			"$set": bson.M{"cart": []models.CartLine{}},
			"$inc": bson.M{"cartVersion": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// EnsureIndexes creates the unique email index.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
