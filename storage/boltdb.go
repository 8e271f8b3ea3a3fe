package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	collystorage "github.com/gocolly/colly/v2/storage"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	papersBucket = []byte("papers")
	collyBucket  = []byte("colly")
)

// BoltStore keeps scraped records and the fetcher's cookie jar in one bbolt
// file.
type BoltStore struct {
	DBPath string
	db     *bolt.DB
	logger *zap.Logger
}

// Open creates the database file and its buckets. A nil logger discards
// cookie jar failures.
func Open(path string, logger *zap.Logger) (*BoltStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{papersBucket, collyBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{DBPath: path, db: db, logger: logger}, nil
}

func (s *BoltStore) Save(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.ID = RecordID(rec.URL)
	if rec.ScrapedAt.IsZero() {
		rec.ScrapedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(papersBucket).Put([]byte(rec.ID), data)
	})
}

func (s *BoltStore) Get(ctx context.Context, pageURL string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(papersBucket).Get([]byte(RecordID(pageURL)))
		if v == nil {
			return ErrNotFound
		}
		rec = &Record{}
		return json.Unmarshal(v, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (s *BoltStore) List(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(papersBucket).ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode record %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ScrapedAt.After(records[j].ScrapedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *BoltStore) Delete(ctx context.Context, pageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(papersBucket)
		key := []byte(RecordID(pageURL))
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
}

// Init implements storage.Storage interface. The bucket already exists after
// Open.
func (s *BoltStore) Init() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collyBucket)
		return err
	})
}

// Visited implements storage.Storage interface
func (s *BoltStore) Visited(requestID uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(collyBucket)
		key := []byte(fmt.Sprintf("v:%d", requestID))
		return b.Put(key, []byte("1"))
	})
}

// IsVisited implements storage.Storage interface
func (s *BoltStore) IsVisited(requestID uint64) (bool, error) {
	var visited bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(collyBucket)
		key := []byte(fmt.Sprintf("v:%d", requestID))
		visited = b.Get(key) != nil
		return nil
	})
	return visited, err
}

// Cookies implements storage.Storage interface
func (s *BoltStore) Cookies(u *url.URL) string {
	var cookies string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(collyBucket)
		if v := b.Get(cookieKey(u)); v != nil {
			cookies = string(v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Failed to read cookies",
			zap.String("host", u.Host),
			zap.Error(err))
	}
	return cookies
}

// SetCookies implements storage.Storage interface
func (s *BoltStore) SetCookies(u *url.URL, cookies string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(collyBucket).Put(cookieKey(u), []byte(cookies))
	})
	if err != nil {
		s.logger.Error("Failed to store cookies",
			zap.String("host", u.Host),
			zap.Error(err))
	}
}

// cookieKey scopes cookies to the host, the way colly's in-memory jar does.
func cookieKey(u *url.URL) []byte {
	return []byte("c:" + u.Host)
}

// Close closes the BoltDB database
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure BoltStore implements the storage interfaces
var (
	_ collystorage.Storage = (*BoltStore)(nil)
	_ PaperRepository      = (*BoltStore)(nil)
)
