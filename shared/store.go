// ABOUTME: Shared cross-wizard form data store with expiry
// ABOUTME: In-memory cache over a durable badger KV, last-writer-wins
package shared

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/prismfoil/intake/models"
)

// DefaultKey is the handoff key the wizards use unless told otherwise.
const DefaultKey = "form-data"

// TTL is how long a persisted entry stays readable. Entries older than
// this are treated as absent and purged on the next read.
const TTL = 7 * 24 * time.Hour

// entry is the durable envelope: the data plus its write time in epoch
// milliseconds, matching the wire shape of the original web client.
type entry struct {
	Data      models.FormData `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Store lets one wizard hand partial form data to another. The in-memory
// cache is authoritative for the current session; the badger copy is the
// fallback source of truth across restarts. The two writes are not
// transactional, and callers tolerate divergence between them.
type Store struct {
	mu    sync.Mutex
	cache map[string]models.FormData
	db    *badger.DB
	now   func() time.Time
}

// Option adjusts a Store, mainly for tests.
type Option func(*Store)

// WithClock injects the time source used for entry stamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (or creates) the durable store at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, err
	}

	s := &Store{
		cache: make(map[string]models.FormData),
		db:    db,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Set writes data under key to both the cache and the durable store.
// Persistence failures are logged and swallowed: the cache keeps the
// session working and the durable copy is best-effort.
func (s *Store) Set(key string, data models.FormData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = data

	buf, err := json.Marshal(entry{Data: data, Timestamp: s.now().UnixMilli()})
	if err != nil {
		log.Printf("shared: failed to encode entry for %q: %v", key, err)
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf)
	})
	if err != nil {
		log.Printf("shared: failed to persist %q: %v", key, err)
	}
}

// Get returns the data under key, consulting the cache first and falling
// back to the durable store. Expired or malformed durable entries are
// deleted eagerly and reported as absent.
func (s *Store) Get(key string) (models.FormData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, ok := s.cache[key]; ok {
		return data, true
	}

	var buf []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		buf, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return models.FormData{}, false
	}
	if err != nil {
		log.Printf("shared: failed to read %q: %v", key, err)
		return models.FormData{}, false
	}

	var e entry
	if err := json.Unmarshal(buf, &e); err != nil {
		log.Printf("shared: dropping malformed entry %q: %v", key, err)
		s.deleteDurable(key)
		return models.FormData{}, false
	}

	if s.now().UnixMilli()-e.Timestamp > TTL.Milliseconds() {
		s.deleteDurable(key)
		return models.FormData{}, false
	}

	// Promote into the session cache.
	s.cache[key] = e.Data
	return e.Data, true
}

// Has reports whether a live entry exists under key.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Clear removes both the cached and durable entries for key.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, key)
	s.deleteDurable(key)
}

func (s *Store) deleteDurable(key string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		log.Printf("shared: failed to delete %q: %v", key, err)
	}
}
