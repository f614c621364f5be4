// Package cache provides the detection-result cache. Caching is strictly
// best-effort: callers treat every error as a miss and never fail a
// request because the cache is down.
package cache

import "context"

// Cache is a TTL'd key-value store for serialized detection results.
// Get returns (nil, nil) on a miss. Set overwrites idempotently, so
// concurrent writers racing on the same key are harmless.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}

// Noop is substituted when no cache backend is configured or reachable.
// Every lookup misses and every write succeeds without effect.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }
func (Noop) Set(ctx context.Context, key string, value []byte) error {
	return nil
}
func (Noop) Close(ctx context.Context) error { return nil }
