// Package localstate persists the client's durable key/value state (the
// session credential pair) in a local sqlite database.
package localstate

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
