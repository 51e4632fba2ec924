// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// StateKey is the fixed key holding the whole tracker state as JSON text.
const StateKey = "bike-maintenance-tracker:v1"

// ErrNotFound is returned by Store.Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store defines the interface for key-value persistence.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the service layer.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
