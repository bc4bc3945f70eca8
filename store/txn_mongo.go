package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTxn runs functions inside a MongoDB multi-document transaction.
// Requires a replica set or sharded deployment; use NoTxn otherwise.
type MongoTxn struct {
	client *mongo.Client
}

func NewMongoTxn(client *mongo.Client) *MongoTxn {
	return &MongoTxn{client: client}
}

func (t *MongoTxn) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
