package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KeyValue is the durable storage port. Values are opaque strings, last writer wins.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}
