package kv

import "context"

// Store abstracts the key-value substrate used for conversation state.
// Implementations can be Redis, in-memory, etc.
// Get reports absence via the second return value instead of an error.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}
