package namespace

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/rhurkes/wx-storage/internal/storage/pebble"
)

// Keyspace layout (byte-wise, lexicographically sortable):
//   - nsmeta/{name}    (namespace metadata, JSON)
//   - ns/{name}/{key}  (entries)

var (
	sep          = byte('/')
	nsPrefix     = []byte("ns/")
	nsMetaPrefix = []byte("nsmeta/")
)

// Meta holds namespace metadata.
type Meta struct {
	Name        string `json:"name"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

// nsMetaKey builds the metadata key for a namespace.
func nsMetaKey(name string) []byte {
	k := make([]byte, 0, len(nsMetaPrefix)+len(name))
	k = append(k, nsMetaPrefix...)
	k = append(k, name...)
	return k
}

// entryPrefix builds the entry key prefix for a namespace.
func entryPrefix(name string) []byte {
	k := make([]byte, 0, len(nsPrefix)+len(name)+1)
	k = append(k, nsPrefix...)
	k = append(k, name...)
	k = append(k, sep)
	return k
}

// prefixUpperBound returns the smallest key greater than every key carrying
// the given prefix, or nil when no such key exists.
func prefixUpperBound(prefix []byte) []byte {
	ub := append([]byte(nil), prefix...)
	for i := len(ub) - 1; i >= 0; i-- {
		if ub[i] < 0xff {
			ub[i]++
			return ub[:i+1]
		}
	}
	return nil
}

// Ensure creates a namespace meta record if absent, returning the effective
// meta. Idempotent: returns the existing record if already present.
func Ensure(db *pebblestore.DB, name string) (Meta, error) {
	key := nsMetaKey(name)
	if b, found, err := db.Get(key); err != nil {
		return Meta{}, err
	} else if found && len(b) > 0 {
		var m Meta
		if err := json.Unmarshal(b, &m); err == nil {
			return m, nil
		}
		// fallthrough to rewrite if corrupted
	}
	m := Meta{Name: name, CreatedAtMs: time.Now().UnixMilli()}
	bytes, err := json.Marshal(m)
	if err != nil {
		return Meta{}, err
	}
	if err := db.Set(key, bytes); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// Handle is one ordered keyspace bounded to its prefix. Entries in one
// namespace are invisible to every other namespace.
type Handle struct {
	db    *pebblestore.DB
	name  string
	lower []byte
	upper []byte
}

// Open ensures the namespace exists and returns a handle bound to it.
func Open(db *pebblestore.DB, name string) (*Handle, error) {
	if _, err := Ensure(db, name); err != nil {
		return nil, err
	}
	lower := entryPrefix(name)
	return &Handle{db: db, name: name, lower: lower, upper: prefixUpperBound(lower)}, nil
}

// Name returns the namespace name.
func (h *Handle) Name() string { return h.name }

func (h *Handle) key(k []byte) []byte {
	out := make([]byte, 0, len(h.lower)+len(k))
	out = append(out, h.lower...)
	return append(out, k...)
}

// Put upserts an entry; last write wins.
func (h *Handle) Put(key, value []byte) error {
	return h.db.Set(h.key(key), value)
}

// Get returns a copy of the value for key. Missing keys return found=false,
// not an error.
func (h *Handle) Get(key []byte) ([]byte, bool, error) {
	return h.db.Get(h.key(key))
}

// SeekForward returns an iterator positioned at the first entry whose key is
// >= from, or at the namespace start when from is empty. The iterator is
// bounded to this namespace and yields entries in ascending key order.
// Callers must Close it.
func (h *Handle) SeekForward(from []byte) (*pebble.Iterator, error) {
	it, err := h.db.NewIter(&pebble.IterOptions{LowerBound: h.lower, UpperBound: h.upper})
	if err != nil {
		return nil, err
	}
	if len(from) == 0 {
		it.First()
	} else {
		it.SeekGE(h.key(from))
	}
	return it, nil
}
