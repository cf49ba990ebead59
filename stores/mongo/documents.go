package mongo

import (
	"context"
	"errors"
	"fmt"
	"portfolio-complete/core"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documentID is the fixed key of the only record in the collection.
const documentID = "portfolio"

type record struct {
	ID       string        `bson:"_id"`
	Document core.Document `bson:"data"`
}

type documentStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewDocumentStore connects and pings within timeout. The caller closes the
// store to disconnect.
func NewDocumentStore(ctx context.Context, uri, database string, timeout time.Duration) (core.DocumentStore, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &documentStore{
		client: client,
		col:    client.Database(database).Collection("portfolio"),
	}, nil
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	var r record
	err := s.col.FindOne(ctx, bson.M{"_id": documentID}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logrus.Warn("Portfolio collection is empty")
			return nil, core.ErrNotFound
		}
		logrus.WithField("error", err).Error("Failed to retrieve document")
		return nil, err
	}
	return &r.Document, nil
}

func (s *documentStore) Replace(ctx context.Context, document *core.Document) error {
	r := record{ID: documentID, Document: *document}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": documentID}, r, options.Replace().SetUpsert(true))
	if err != nil {
		logrus.WithField("error", err).Error("Failed to replace document")
		return err
	}
	logrus.Info("Document replaced successfully")
	return nil
}

func (s *documentStore) Close() error {
	return s.client.Disconnect(context.Background())
}
