// Package kvstore holds the key-value namespaces the booking store persists into.
package kvstore

import "context"

// Store is a flat string-keyed namespace of opaque values.
// Get reports found=false for a key that was never written.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}
