package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"portfolio-complete/core"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// Config holds MinIO connection configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Key       string
}

type documentStore struct {
	client *minio.Client
	bucket string
	key    string
}

// NewDocumentStore creates the client and makes sure the bucket exists.
func NewDocumentStore(cfg Config) (core.DocumentStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	key := cfg.Key
	if key == "" {
		key = "portfolio.json"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, xerr := mc.BucketExists(ctx, cfg.Bucket)
		if xerr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return &documentStore{client: mc, bucket: cfg.Bucket, key: key}, nil
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", s.key, err)
	}
	defer obj.Close()

	// GetObject is lazy; Stat surfaces a missing object.
	if _, err := obj.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			logrus.WithField("key", s.key).Warn("Portfolio object does not exist")
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat document %s: %w", s.key, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read document data: %w", err)
	}
	return core.Unmarshal(data)
}

func (s *documentStore) Replace(ctx context.Context, document *core.Document) error {
	data, err := core.Marshal(document)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"bucket":      s.bucket,
		"key":         s.key,
		"data_length": len(data),
	}).Info("Document replaced successfully")
	return nil
}
