// Package badger provides the shared tier of the result cache, backed
// by BadgerDB. Entries expire through Badger's native TTL; a secondary
// content-id index supports targeted invalidation.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Key prefixes. Entry keys hold the serialized cache entry; index keys
// map a content id to the entry keys referencing it.
const (
	entryPrefix = "res:"
	indexPrefix = "cid:"
)

// Cache is the Badger-backed shared cache tier.
type Cache struct {
	db *badger.DB
}

var _ driven.CacheTier = (*Cache)(nil)

// badgerLoggerAdapter routes Badger's own logging through the package
// logger.
type badgerLoggerAdapter struct{}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (badgerLoggerAdapter) Errorf(msg string, items ...any)   { logger.Warn(msg, items...) }
func (badgerLoggerAdapter) Warningf(msg string, items ...any) { logger.Warn(msg, items...) }
func (badgerLoggerAdapter) Infof(msg string, items ...any)    { logger.Debug(msg, items...) }
func (badgerLoggerAdapter) Debugf(msg string, items ...any)   { logger.Debug(msg, items...) }

// Open opens a Badger database at the given path, creating the
// directory if needed. An empty path opens an in-memory database.
func Open(path string) (*Cache, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = badgerLoggerAdapter{}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get returns the entry for key, or a miss when absent, expired, or
// unreadable. Decode failures count as misses so a stale encoding
// never breaks a search.
func (c *Cache) Get(_ context.Context, key string) (*domain.CacheEntry, bool) {
	var entry *domain.CacheEntry

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(entryPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = UnmarshalCacheEntry(val)
			return err
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logger.Debug("shared cache read failed for %s: %v", key, err)
		}
		return nil, false
	}

	if entry.Expired(time.Now()) {
		return nil, false
	}
	return entry, true
}

// Put stores the entry and its content-id index rows under the given
// TTL. Badger drops all rows together once the TTL lapses.
func (c *Cache) Put(_ context.Context, entry *domain.CacheEntry, ttl time.Duration) error {
	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	data := MarshalCacheEntry(entry)

	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(entryPrefix+entry.Key), data).WithTTL(ttl)
		if err := txn.SetEntry(e); err != nil {
			return err
		}
		for _, contentID := range entry.ContentIDs {
			idx := badger.NewEntry(indexKey(contentID, entry.Key), nil).WithTTL(ttl)
			if err := txn.SetEntry(idx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Invalidate drops every entry referencing any of the content IDs,
// walking the content-id index.
func (c *Cache) Invalidate(_ context.Context, contentIDs []string) error {
	for _, contentID := range contentIDs {
		keys, err := c.entryKeysFor(contentID)
		if err != nil {
			return fmt.Errorf("scanning cache index for %s: %w", contentID, err)
		}

		err = c.db.Update(func(txn *badger.Txn) error {
			for _, key := range keys {
				if err := txn.Delete([]byte(entryPrefix + key)); err != nil {
					return err
				}
				if err := txn.Delete(indexKey(contentID, key)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("invalidating cache entries for %s: %w", contentID, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// entryKeysFor returns the cache keys referencing the content id.
func (c *Cache) entryKeysFor(contentID string) ([]string, error) {
	prefix := indexPrefixFor(contentID)

	var keys []string
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().KeyCopy(nil)
			keys = append(keys, string(k[len(prefix):]))
		}
		return nil
	})
	return keys, err
}

// indexPrefixFor returns the index-row prefix for one content id. The
// id is length-prefixed so an id containing ":" or one that prefixes
// another never matches the other's rows.
func indexPrefixFor(contentID string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s:", indexPrefix, len(contentID), contentID))
}

func indexKey(contentID, cacheKey string) []byte {
	return append(indexPrefixFor(contentID), cacheKey...)
}
