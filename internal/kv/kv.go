// Package kv provides the pluggable key-value substrate that shadow
// collections persist into. Values are opaque byte blobs keyed by name;
// the store layer above decides their JSON shape.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is the minimal contract every driver satisfies.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLStore is implemented by drivers that can expire keys on their own.
// Callers that need expiry (session revocation records) type-assert for it
// and fall back to plain Set otherwise.
type TTLStore interface {
	Store
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SetWithTTL writes through the driver's native expiry when available.
func SetWithTTL(ctx context.Context, s Store, key string, value []byte, ttl time.Duration) error {
	if ts, ok := s.(TTLStore); ok {
		return ts.SetWithTTL(ctx, key, value, ttl)
	}

	return s.Set(ctx, key, value)
}
