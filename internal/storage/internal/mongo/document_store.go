package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/syntrixbase/pager/internal/storage/types"
	"github.com/syntrixbase/pager/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type documentStore struct {
	client    *mongo.Client
	db        *mongo.Database
	objectIDs bool
}

// NewDocumentStore wraps an already connected database.
// With objectIDs set, ids are stored as ObjectIds and exposed as hex strings.
func NewDocumentStore(client *mongo.Client, db *mongo.Database, objectIDs bool) types.DocumentStore {
	return &documentStore{
		client:    client,
		db:        db,
		objectIDs: objectIDs,
	}
}

func (m *documentStore) Collection(name string) types.Collection {
	return &collection{
		coll:      m.db.Collection(name),
		objectIDs: m.objectIDs,
	}
}

func (m *documentStore) Insert(ctx context.Context, coll string, doc model.Document) (string, error) {
	data := make(model.Document, len(doc)+1)
	for k, v := range doc {
		data[k] = v
	}
	if data.MissingID() {
		if m.objectIDs {
			data.SetID(primitive.NewObjectID().Hex())
		} else {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			data.SetID(id.String())
		}
	}

	if _, err := m.db.Collection(coll).InsertOne(ctx, fromDocument(data, m.objectIDs)); err != nil {
		return "", model.WrapError(err)
	}
	return fmt.Sprint(data[model.IDField]), nil
}

func (m *documentStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type collection struct {
	coll      *mongo.Collection
	objectIDs bool
}

func (c *collection) Count(ctx context.Context, filter model.Predicate) (int64, error) {
	query, err := makeFilterBSON(filter, c.objectIDs)
	if err != nil {
		return 0, err
	}
	n, err := c.coll.CountDocuments(ctx, query)
	if err != nil {
		return 0, model.WrapError(err)
	}
	return n, nil
}

func (c *collection) Find(ctx context.Context, q types.FindQuery) ([]model.Document, error) {
	query, err := makeFilterBSON(q.Filter, c.objectIDs)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	if len(q.Sort) > 0 {
		findOptions.SetSort(makeSortBSON(q.Sort))
	}
	if q.Skip > 0 {
		findOptions.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}

	cursor, err := c.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, model.WrapError(err)
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), model.WrapError(err))
	}

	docs := make([]model.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}
	return docs, nil
}
