// Package kv provides the string-keyed byte store the catalog and quote
// components persist through. Stores are injectable so the domain packages
// stay persistence-agnostic and tests can swap in the in-memory fake.
package kv

import (
	"context"
	"encoding/json"
)

// Store is a minimal durable key-value contract. Get reports whether the key
// existed so callers can distinguish "missing" from an empty value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// GetJSON reads key from s and unmarshals it into dst. It reports whether the
// key existed.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	if s == nil || key == "" {
		return false, nil
	}
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	if s == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
