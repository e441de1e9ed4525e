package database

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a key does not exist in the storage area.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned when a write would exceed the storage area capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// A Client can interacts with the storage area.
// The storage area is a flat key-value namespace holding serialized values.
type Client interface {
	// Get returns the value stored under the given key.
	Get(key string) ([]byte, error)
	// Set replaces the value stored under the given key.
	Set(key string, value []byte) error
	// Remove deletes the given key. Removing a missing key is not an error.
	Remove(key string) error
	// Keys returns all the stored keys in lexical order.
	Keys() ([]string, error)
	// Close the storage area.
	Close() error
	// IsNotFound returns true if err is a not found error.
	IsNotFound(err error) bool
	// IsQuotaExceeded returns true if err is a quota error.
	IsQuotaExceeded(err error) bool
}

func isNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

func isQuotaExceeded(err error) bool {
	return errors.Cause(err) == ErrQuotaExceeded
}

// fits returns true when replacing the current value of size `previous` by
// a value of size `next` keeps the area under quota.
// A quota lower or equal to zero means unlimited.
func fits(quota, used, previous, next int) bool {
	if quota <= 0 {
		return true
	}
	return used-previous+next <= quota
}
