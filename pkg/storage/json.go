package storage

import (
	"encoding/json"
	"fmt"
)

// JSONStore stores JSON-encoded values on top of a Backend.
type JSONStore struct {
	Backend
}

// NewJSONStore wraps backend
func NewJSONStore(backend Backend) *JSONStore {
	return &JSONStore{Backend: backend}
}

// PutJSON encodes v and stores it under key
func (j *JSONStore) PutJSON(bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return j.Put(bucket, key, data)
}

// GetJSON decodes the value under key into v. It reports false when the key is absent.
func (j *JSONStore) GetJSON(bucket, key []byte, v any) (bool, error) {
	data, err := j.Get(bucket, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return true, nil
}

// ForEachJSON decodes every value in bucket with decode.
func (j *JSONStore) ForEachJSON(bucket []byte, decode func(k []byte, unmarshal func(v any) error) error) error {
	return j.ForEach(bucket, func(k, data []byte) error {
		return decode(k, func(v any) error {
			if err := json.Unmarshal(data, v); err != nil {
				return fmt.Errorf("failed to decode JSON for key %s: %w", k, err)
			}
			return nil
		})
	})
}
