package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	Admin     AdminConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig selects one backend by Type; only that backend's fields are read.
type StorageConfig struct {
	Type     string
	Local    LocalConfig
	SQLite   SQLiteConfig
	Postgres PostgresConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	S3       S3Config
	MinIO    MinIOConfig
}

type LocalConfig struct {
	Path string
}

type SQLiteConfig struct {
	DataSourceName string
}

type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnTimeout     time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type S3Config struct {
	Bucket string
	Key    string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// AdminConfig holds the shared secret shown to the edit form. It gates the UI
// only; replace requests are not checked against it.
type AdminConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// LoadConfig loads configuration from environment variables and an optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "3002")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORAGE_TYPE", "memory")
	v.SetDefault("LOCAL_STORAGE_PATH", "./data")
	v.SetDefault("DATA_SOURCE_NAME", "portfolio.db")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "15m")
	v.SetDefault("DATABASE_CONN_TIMEOUT", "5s")
	v.SetDefault("MONGODB_DATABASE", "portfolio")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_KEY", "portfolio")
	v.SetDefault("S3_OBJECT_KEY", "portfolio.json")
	v.SetDefault("MINIO_BUCKET", "portfolio")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "https://*,http://*")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)

	// Neon deployments export NEON_DATABASE_URL.
	databaseURL := v.GetString("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = v.GetString("NEON_DATABASE_URL")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetString("SERVER_PORT"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: time.Duration(v.GetInt("SERVER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Storage: StorageConfig{
			Type: strings.ToLower(v.GetString("STORAGE_TYPE")),
			Local: LocalConfig{
				Path: v.GetString("LOCAL_STORAGE_PATH"),
			},
			SQLite: SQLiteConfig{
				DataSourceName: v.GetString("DATA_SOURCE_NAME"),
			},
			Postgres: PostgresConfig{
				URL:             databaseURL,
				MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
				MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
				ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
				ConnTimeout:     v.GetDuration("DATABASE_CONN_TIMEOUT"),
			},
			MongoDB: MongoDBConfig{
				URI:      v.GetString("MONGODB_URI"),
				Database: v.GetString("MONGODB_DATABASE"),
				Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			},
			Redis: RedisConfig{
				Addr:     v.GetString("REDIS_ADDR"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
				Key:      v.GetString("REDIS_KEY"),
			},
			S3: S3Config{
				Bucket: v.GetString("S3_BUCKET_NAME"),
				Key:    v.GetString("S3_OBJECT_KEY"),
			},
			MinIO: MinIOConfig{
				Endpoint:  v.GetString("MINIO_ENDPOINT"),
				AccessKey: v.GetString("MINIO_ACCESS_KEY"),
				SecretKey: v.GetString("MINIO_SECRET_KEY"),
				UseSSL:    v.GetBool("MINIO_USE_SSL"),
				Bucket:    v.GetString("MINIO_BUCKET"),
			},
		},
		Admin: AdminConfig{
			Secret: v.GetString("ADMIN_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) validate() error {
	s := c.Storage
	switch s.Type {
	case "memory", "":
	case "filesystem":
		if s.Local.Path == "" {
			return fmt.Errorf("LOCAL_STORAGE_PATH required for filesystem storage")
		}
	case "sqlite":
		if s.SQLite.DataSourceName == "" {
			return fmt.Errorf("DATA_SOURCE_NAME required for sqlite storage")
		}
	case "postgres":
		if s.Postgres.URL == "" {
			return fmt.Errorf("DATABASE_URL required for postgres storage")
		}
	case "mongodb":
		if s.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI required for mongodb storage")
		}
	case "redis":
		if s.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR required for redis storage")
		}
	case "s3":
		if s.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET_NAME required for s3 storage")
		}
	case "minio":
		if s.MinIO.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT required for minio storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", s.Type)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid LOG_FORMAT %q (must be text or json)", c.Log.Format)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
