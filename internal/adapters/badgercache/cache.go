// Package badgercache implements ports.ResultCache on an embedded Badger database,
// persisting results across restarts of a single process.
package badgercache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/zerr"
)

// Cache is a Badger-backed result cache.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens or creates the database in dir. Entries expire after ttl.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", dir)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", dir)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the table stored under key, or nil if absent or expired.
func (c *Cache) Get(_ context.Context, key domain.CacheKey) (*domain.Table, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key.String()))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "key", key.String())
	}

	var table domain.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "key", key.String())
	}
	return &table, nil
}

// Put stores table under key in a single transaction.
func (c *Cache) Put(_ context.Context, key domain.CacheKey, table *domain.Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return zerr.Wrap(err, domain.ErrTableMarshalFailed.Error())
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key.String()), data).WithTTL(c.ttl))
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key.String())
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(_ context.Context, key domain.CacheKey) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key.String()))
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key.String())
	}
	return nil
}

// Close releases the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
