package database

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

type memory struct {
	mu     sync.RWMutex
	quota  int
	used   int
	values map[string][]byte
}

// NewMemory returns an in-memory storage area.
// quota is the maximum total size of the stored values in bytes, zero means unlimited.
func NewMemory(quota int) Client {
	return &memory{
		quota:  quota,
		values: map[string][]byte{},
	}
}

// Get returns the value stored under the given key.
func (c *memory) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[key]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "get %s", key)
	}
	return append([]byte(nil), v...), nil
}

// Set replaces the value stored under the given key.
func (c *memory) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous := len(c.values[key])
	if !fits(c.quota, c.used, previous, len(value)) {
		return errors.Wrapf(ErrQuotaExceeded, "set %s", key)
	}

	c.values[key] = append([]byte(nil), value...)
	c.used += len(value) - previous
	return nil
}

// Remove deletes the given key.
func (c *memory) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.used -= len(c.values[key])
	delete(c.values, key)
	return nil
}

// Keys returns all the stored keys in lexical order.
func (c *memory) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close the storage area.
func (c *memory) Close() error {
	return nil
}

// IsNotFound returns true if err is a not found error.
func (c *memory) IsNotFound(err error) bool {
	return isNotFound(err)
}

// IsQuotaExceeded returns true if err is a quota error.
func (c *memory) IsQuotaExceeded(err error) bool {
	return isQuotaExceeded(err)
}
