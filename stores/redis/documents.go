package redis

import (
	"context"
	"errors"
	"portfolio-complete/core"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// documentStore keeps the serialized document under a single key with no TTL.
type documentStore struct {
	client *redis.Client
	key    string
}

// NewDocumentStore wraps an existing client. key defaults to "portfolio".
func NewDocumentStore(client *redis.Client, key string) core.DocumentStore {
	if key == "" {
		key = "portfolio"
	}
	return &documentStore{client: client, key: key}
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", s.key).Warn("Portfolio key is not set")
			return nil, core.ErrNotFound
		}
		logrus.WithField("error", err).Error("Failed to retrieve document")
		return nil, err
	}
	return core.Unmarshal(data)
}

func (s *documentStore) Replace(ctx context.Context, document *core.Document) error {
	data, err := core.Marshal(document)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{
		"key":         s.key,
		"data_length": len(data),
	})
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		log.WithField("error", err).Error("Failed to replace document")
		return err
	}
	log.Info("Document replaced successfully")
	return nil
}

func (s *documentStore) Close() error {
	return s.client.Close()
}
