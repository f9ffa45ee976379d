// Package store defines the key-value persistence seam the session manager
// and content store are written against. Values are opaque JSON blobs; any
// backend that can do get, put, and create-if-absent satisfies it.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Store is the minimal key-value interface. CreateIfAbsent is the only
// conditional operation; it is what makes session and daily-content creation
// safe under concurrent requests.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// CreateIfAbsent stores value under key only if the key is absent.
	// It returns the value now stored under the key and whether this call
	// created it. On conflict the existing value is returned unchanged.
	CreateIfAbsent(ctx context.Context, key string, value []byte) ([]byte, bool, error)
}
