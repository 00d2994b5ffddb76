package mongo

import (
	"context"

	"github.com/syntrixbase/pager/internal/storage/types"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials uri, verifies the connection and returns a store over dbName.
func Connect(ctx context.Context, uri string, dbName string, objectIDs bool) (types.DocumentStore, error) {
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return NewDocumentStore(client, client.Database(dbName), objectIDs), nil
}
