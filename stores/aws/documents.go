package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"portfolio-complete/core"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
)

type documentStore struct {
	s3Client *s3.Client
	bucket   string // Name of the S3 bucket
	key      string // Object key holding the document
}

func NewDocumentStore(ctx context.Context, bucketName, key string) (core.DocumentStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	if key == "" {
		key = "portfolio.json"
	}

	return &documentStore{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucketName,
		key:      key,
	}, nil
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	resp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			logrus.WithField("key", s.key).Warn("Portfolio object does not exist")
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", s.key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
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

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
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
