package store

import (
	"fmt"
	"time"

	"github.com/rhurkes/wx-storage/internal/namespace"
	pebblestore "github.com/rhurkes/wx-storage/internal/storage/pebble"
	"github.com/rhurkes/wx-storage/pkg/wire"
)

// Namespace names. Fixed so reopening a store attaches to existing data.
const (
	nsDefault       = "default"
	nsEvents        = "events"
	nsFetchFailures = "fetch_failures"
)

// Historical retention windows; callers override through Options.
const (
	DefaultEventThreshold        = time.Hour
	DefaultFetchFailureThreshold = 3 * time.Minute
)

// Options configures a Store.
type Options struct {
	// Path is the storage engine directory.
	Path string
	// EventThreshold bounds threshold scans of the events namespace.
	EventThreshold time.Duration
	// FetchFailureThreshold bounds scans of the fetch_failures namespace.
	FetchFailureThreshold time.Duration
	// Fsync determines when the engine syncs its WAL.
	Fsync pebblestore.FsyncMode
	// FsyncInterval controls group-commit when Fsync=FsyncModeInterval.
	FsyncInterval time.Duration
	// Metrics observes engine reads and writes. Optional.
	Metrics pebblestore.MetricsHook
	// Now supplies current micros since epoch; defaults to the wall clock.
	Now func() uint64
}

// Store owns the engine handle, the three namespaces, the retention
// thresholds, and the clock. Create one per process and pass it to
// collaborators.
type Store struct {
	db            *pebblestore.DB
	defaultNS     *namespace.Handle
	events        *namespace.Handle
	fetchFailures *namespace.Handle

	eventThresholdMicros        uint64
	fetchFailureThresholdMicros uint64
	now                         func() uint64
}

// Open creates or attaches the store at opts.Path along with its namespaces.
// Safe to call against an existing on-disk store.
func Open(opts Options) (*Store, error) {
	if opts.EventThreshold <= 0 {
		opts.EventThreshold = DefaultEventThreshold
	}
	if opts.FetchFailureThreshold <= 0 {
		opts.FetchFailureThreshold = DefaultFetchFailureThreshold
	}
	if opts.Now == nil {
		opts.Now = func() uint64 { return uint64(time.Now().UnixMicro()) }
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.Path,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Metrics:       opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &Store{
		db:                          db,
		eventThresholdMicros:        uint64(opts.EventThreshold.Microseconds()),
		fetchFailureThresholdMicros: uint64(opts.FetchFailureThreshold.Microseconds()),
		now:                         opts.Now,
	}

	if s.defaultNS, err = namespace.Open(db, nsDefault); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open namespace %s: %w", nsDefault, err)
	}
	if s.events, err = namespace.Open(db, nsEvents); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open namespace %s: %w", nsEvents, err)
	}
	if s.fetchFailures, err = namespace.Open(db, nsFetchFailures); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open namespace %s: %w", nsFetchFailures, err)
	}
	return s, nil
}

// Close releases the engine.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put upserts a caller-keyed value in the default namespace; last write wins.
func (s *Store) Put(key string, value []byte) error {
	return s.defaultNS.Put([]byte(key), value)
}

// Get returns the value for key in the default namespace. Missing keys
// return found=false, not an error.
func (s *Store) Get(key string) ([]byte, bool, error) {
	return s.defaultNS.Get([]byte(key))
}

// PutEvent stamps ev with the store clock, writes it to the events namespace
// under its decimal time key, and returns the assigned micros. Two events
// stamped in the same microsecond collide on the key; the second overwrites
// the first.
func (s *Store) PutEvent(ev wire.Event) (uint64, error) {
	micros := s.now()
	ev.IngestTS = micros
	if err := s.events.Put(timeKey(micros), wire.EncodeEvent(ev)); err != nil {
		return 0, err
	}
	return micros, nil
}

// GetEvents returns the envelope of events newer than the event threshold.
func (s *Store) GetEvents() ([]byte, error) {
	return s.scanFrom(s.events, s.cutoffKey(s.eventThresholdMicros))
}

// GetEventsAfter returns the envelope of events with ingest timestamps
// strictly greater than cursor. The record at the cursor's own timestamp has
// already been seen by the caller and is excluded.
func (s *Store) GetEventsAfter(cursor uint64) ([]byte, error) {
	if cursor == ^uint64(0) {
		return emptyEnvelope(), nil
	}
	return s.scanFrom(s.events, timeKey(cursor+1))
}

// GetAllEvents returns the envelope of every event in the namespace,
// regardless of age.
func (s *Store) GetAllEvents() ([]byte, error) {
	return s.scanFrom(s.events, nil)
}

// PutFetchFailure stamps ff with the store clock and writes it to the
// fetch_failures namespace under its decimal time key.
func (s *Store) PutFetchFailure(ff wire.FetchFailure) error {
	micros := s.now()
	ff.IngestTS = micros
	return s.fetchFailures.Put(timeKey(micros), wire.EncodeFetchFailure(ff))
}

// GetFetchFailures returns the envelope of failures newer than the
// fetch-failure threshold.
func (s *Store) GetFetchFailures() ([]byte, error) {
	return s.scanFrom(s.fetchFailures, s.cutoffKey(s.fetchFailureThresholdMicros))
}

// cutoffKey renders now-threshold as a seek key, clamping at zero for clocks
// younger than the threshold.
func (s *Store) cutoffKey(thresholdMicros uint64) []byte {
	now := s.now()
	if thresholdMicros >= now {
		return timeKey(0)
	}
	return timeKey(now - thresholdMicros)
}

// scanFrom accumulates raw record bytes in key order from the seek position
// to the end of the namespace and wraps them in a count-prefixed envelope.
// Zero visited records produce a valid envelope with count 0.
func (s *Store) scanFrom(ns *namespace.Handle, from []byte) ([]byte, error) {
	it, err := ns.SeekForward(from)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var (
		body  []byte
		count uint64
	)
	for ; it.Valid(); it.Next() {
		body = append(body, it.Value()...)
		count++
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	out := wire.AppendUint64(make([]byte, 0, 8+len(body)), count)
	return append(out, body...), nil
}

func emptyEnvelope() []byte {
	return wire.EncodeUint64(0)
}
