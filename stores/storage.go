package stores

import (
	"context"
	"portfolio-complete/config"
	"portfolio-complete/core"
	"portfolio-complete/stores/aws"
	"portfolio-complete/stores/filesystem"
	"portfolio-complete/stores/memory"
	"portfolio-complete/stores/minio"
	"portfolio-complete/stores/mongo"
	"portfolio-complete/stores/postgres"
	redisstore "portfolio-complete/stores/redis"
	"portfolio-complete/stores/sqlite"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// GetStore builds the backend named by cfg.Type. Stores holding connections
// also implement io.Closer.
func GetStore(ctx context.Context, cfg config.StorageConfig) (core.DocumentStore, error) {
	var (
		store core.DocumentStore
		err   error
	)

	storageField := logrus.Fields{
		"storage_type": cfg.Type,
	}

	switch cfg.Type {
	case "filesystem":
		storageField["base_path"] = cfg.Local.Path
		store, err = filesystem.NewDocumentStore(cfg.Local.Path)
	case "sqlite":
		storageField["data_source_name"] = cfg.SQLite.DataSourceName
		store, err = sqlite.NewDocumentStore(cfg.SQLite.DataSourceName)
	case "postgres":
		store, err = postgres.NewDocumentStore(postgres.Config{
			URL:             cfg.Postgres.URL,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
			ConnTimeout:     cfg.Postgres.ConnTimeout,
		})
	case "mongodb":
		storageField["database"] = cfg.MongoDB.Database
		store, err = mongo.NewDocumentStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	case "redis":
		storageField["addr"] = cfg.Redis.Addr
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err = client.Ping(ctx).Err(); err != nil {
			client.Close()
			break
		}
		store = redisstore.NewDocumentStore(client, cfg.Redis.Key)
	case "s3":
		storageField["bucket_name"] = cfg.S3.Bucket
		store, err = aws.NewDocumentStore(ctx, cfg.S3.Bucket, cfg.S3.Key)
	case "minio":
		storageField["endpoint"] = cfg.MinIO.Endpoint
		storageField["bucket_name"] = cfg.MinIO.Bucket
		store, err = minio.NewDocumentStore(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		})
	default:
		store = memory.NewDocumentStore()
		storageField["storage_type"] = "in-memory"
	}
	if err != nil {
		logrus.WithFields(storageField).WithField("error", err).Error("Failed to open storage")
		return nil, err
	}

	logrus.WithFields(storageField).Info("Use storage")
	return store, nil
}
