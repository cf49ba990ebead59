package memory

import (
	"context"
	"portfolio-complete/core"
	"sync"
)

type documentStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewDocumentStore keeps the serialized document in process memory.
// It is only suitable for a single instance.
func NewDocumentStore() core.DocumentStore {
	return &documentStore{}
}

func (s *documentStore) Find(ctx context.Context) (*core.Document, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()
	if data == nil {
		return nil, core.ErrNotFound
	}
	return core.Unmarshal(data)
}

func (s *documentStore) Replace(ctx context.Context, document *core.Document) error {
	data, err := core.Marshal(document)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
