package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"portfolio-complete/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const fileName = "portfolio.json"

type documentStore struct {
	basePath string // Directory holding the document file.
}

func NewDocumentStore(basePath string) (core.DocumentStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &documentStore{basePath: basePath}, nil
}

func (s *documentStore) path() string {
	return filepath.Join(s.basePath, fileName)
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	filePath := s.path()
	log := logrus.WithField("file_path", filePath)

	log.Debug("Retrieving document")
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Document file does not exist")
			return nil, core.ErrNotFound
		}
		log.WithField("error", err).Error("Failed to retrieve document")
		return nil, err
	}

	document, err := core.Unmarshal(data)
	if err != nil {
		log.WithField("error", err).Error("Failed to decode document")
		return nil, err
	}
	log.Debug("Document retrieved successfully")
	return document, nil
}

// Replace writes to a uniquely named temp file and renames it over the
// document so readers never observe a partial write.
func (s *documentStore) Replace(ctx context.Context, document *core.Document) error {
	data, err := core.Marshal(document)
	if err != nil {
		return err
	}

	tmpPath := filepath.Join(s.basePath, "."+fileName+"."+ulid.Make().String())
	log := logrus.WithFields(logrus.Fields{
		"file_path":   s.path(),
		"data_length": len(data),
	})

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		log.WithField("error", err).Error("Failed to write document")
		return err
	}
	if err := os.Rename(tmpPath, s.path()); err != nil {
		_ = os.Remove(tmpPath)
		log.WithField("error", err).Error("Failed to replace document")
		return err
	}

	log.Info("Document replaced successfully")
	return nil
}
