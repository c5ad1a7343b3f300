// Package storage provides the durable key-value layer behind every
// persisted IdeaFlow collection. The Store port keeps the medium swappable:
// SQLite for real runs, an in-memory map for tests.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the persistence port. Absent keys are not an error: Load returns
// (nil, nil) so callers distinguish "empty" from "broken medium".
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// LoadJSON reads key and unmarshals it into v. It reports whether the key
// was present.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Load(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON marshals v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Save(ctx, key, data)
}
