package repository

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by stores that cap the total stored size.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KVStore is the key/value storage the profile collection is persisted in.
// Each Set is a whole-value overwrite of one key.
type KVStore interface {
	// Get returns the value under key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
