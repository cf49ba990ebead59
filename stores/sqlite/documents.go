package sqlite

import (
	"context"
	"errors"
	"fmt"
	"portfolio-complete/core"

	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// The table always holds at most the row with id 1.
const (
	createTable     = `CREATE TABLE IF NOT EXISTS portfolio (id INTEGER PRIMARY KEY CHECK (id = 1), data TEXT NOT NULL);`
	selectDocument  = `SELECT data FROM portfolio WHERE id = 1`
	replaceDocument = `INSERT INTO portfolio (id, data) VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET data = excluded.data`
)

type documentStore struct {
	db *sql.DB
}

func NewDocumentStore(dataSourceName string) (core.DocumentStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create portfolio table: %w", err)
	}
	return &documentStore{db}, nil
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	logrus.Debug("Retrieving document")
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

	if _, err := s.db.ExecContext(ctx, replaceDocument, string(data)); err != nil {
		log.WithField("error", err).Error("Failed to replace document")
		return err
	}
	log.Info("Document replaced successfully")
	return nil
}

func (s *documentStore) Close() error {
	return s.db.Close()
}
