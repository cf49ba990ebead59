package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"portfolio-complete/core"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// Provisioned tables may be a bare portfolio(data); id is only a guard on
// tables this store creates. Replace updates whatever row exists and inserts
// only into an empty table, holding replaceLock so two writers never both insert.
const (
	replaceLock     = 7366725 // arbitrary advisory lock key
	lockReplace     = `SELECT pg_advisory_xact_lock($1)`
	createTable     = `CREATE TABLE IF NOT EXISTS portfolio (id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1), data JSONB NOT NULL)`
	selectDocument  = `SELECT data FROM portfolio LIMIT 1`
	replaceDocument = `WITH updated AS (UPDATE portfolio SET data = $1::jsonb RETURNING 1)
INSERT INTO portfolio (data) SELECT $1::jsonb WHERE NOT EXISTS (SELECT 1 FROM updated)`
)

// Config holds the connection pool settings for the portfolio database.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnTimeout     time.Duration
}

type documentStore struct {
	db *sql.DB
}

func NewDocumentStore(cfg Config) (core.DocumentStore, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err = db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create portfolio table: %w", err)
	}

	return &documentStore{db: db}, nil
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectDocument).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.Warn("Portfolio table is empty")
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
	log := logrus.WithField("data_length", len(data))

	if err := s.replace(ctx, string(data)); err != nil {
		log.WithField("error", err).Error("Failed to replace document")
		return err
	}
	log.Info("Document replaced successfully")
	return nil
}

func (s *documentStore) replace(ctx context.Context, data string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, lockReplace, replaceLock); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, replaceDocument, data); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *documentStore) Close() error {
	return s.db.Close()
}
