package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Bucket is the Storm bucket holding the storage area.
const Bucket = "localStorage"

type (
	strm struct {
		db    *storm.DB
		quota int
	}

	// entry is the envelope persisted for each key.
	entry struct {
		Value     []byte    `json:"value"      msgpack:"value"`
		UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`
	}
)

// StormInit initializes Storm database.
func StormInit(database, codec string) error {
	option, err := Codec(codec)
	if err != nil {
		return err
	}

	db, err := storm.Open(database, option)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.Bolt.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(Bucket))
		return err
	})
	return errors.Wrap(err, "could not init storage bucket")
}

// StormOpen returns a new Storm database connection.
// quota is the maximum total size of the stored entries in bytes, zero means unlimited.
func StormOpen(database, codec string, quota int) (Client, error) {
	option, err := Codec(codec)
	if err != nil {
		return nil, err
	}

	db, err := storm.Open(database, option)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db:    db,
		quota: quota,
	}, nil
}

// Get returns the value stored under the given key.
func (c *strm) Get(key string) ([]byte, error) {
	var e entry
	if err := c.db.Get(Bucket, key, &e); err != nil {
		if err == storm.ErrNotFound {
			return nil, errors.Wrapf(ErrNotFound, "get %s", key)
		}
		return nil, errors.Wrapf(err, "could not get %s", key)
	}
	return e.Value, nil
}

// Set replaces the value stored under the given key.
// The quota check and the write are done in the same transaction.
func (c *strm) Set(key string, value []byte) error {
	payload, err := c.db.Codec().Marshal(&entry{
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrapf(err, "could not encode %s", key)
	}

	err = c.db.Bolt.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(Bucket))
		if err != nil {
			return err
		}

		if c.quota > 0 {
			var used int
			err = bucket.ForEach(func(_, v []byte) error {
				used += len(v)
				return nil
			})
			if err != nil {
				return err
			}

			if !fits(c.quota, used, len(bucket.Get([]byte(key))), len(payload)) {
				return ErrQuotaExceeded
			}
		}

		return bucket.Put([]byte(key), payload)
	})
	if err == ErrQuotaExceeded || err == bolt.ErrValueTooLarge {
		return errors.Wrapf(ErrQuotaExceeded, "set %s", key)
	}
	return errors.Wrapf(err, "could not set %s", key)
}

// Remove deletes the given key.
func (c *strm) Remove(key string) error {
	err := c.db.Delete(Bucket, key)
	if err == storm.ErrNotFound {
		// The bucket does not exist yet, so does the key.
		return nil
	}
	return errors.Wrapf(err, "could not remove %s", key)
}

// Keys returns all the stored keys in lexical order.
func (c *strm) Keys() ([]string, error) {
	keys := make([]string, 0)
	err := c.db.Bolt.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(Bucket))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, errors.Wrap(err, "could not list keys")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return isNotFound(err)
}

// IsQuotaExceeded returns true if err is a quota error.
func (c *strm) IsQuotaExceeded(err error) bool {
	return isQuotaExceeded(err)
}
