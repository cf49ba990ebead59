package core

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes a document the way every store persists it.
func Marshal(document *Document) ([]byte, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

func Unmarshal(data []byte) (*Document, error) {
	var document Document
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &document, nil
}

// Clone returns a deep copy so callers never share slices with a store.
func Clone(document *Document) (*Document, error) {
	data, err := Marshal(document)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
