// Package kv provides the key-value persistence layer backing every
// cafeteria store. Each collection lives under a single string key as one
// JSON document, and every write replaces the whole document, so a write
// either lands completely or not at all.
package kv

import "context"

// Store is the persistence contract shared by all backends. Get decodes the
// JSON document under key into the value pointed at by into and reports
// whether the key existed; an absent key is not an error. Set serializes the
// value and atomically replaces whatever was stored under key.
type Store interface {
	Get(ctx context.Context, key string, into interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key joins an optional session scope with a base key. An empty scope leaves
// the base key untouched, matching the single-session layout.
func Key(scope, base string) string {
	if scope == "" {
		return base
	}
	return scope + ":" + base
}
