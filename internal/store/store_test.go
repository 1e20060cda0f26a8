package store

import (
	"bytes"
	"testing"
	"time"

	pebblestore "github.com/rhurkes/wx-storage/internal/storage/pebble"
	"github.com/rhurkes/wx-storage/pkg/wire"
)

// testClock stands in for the wall clock so retention windows are exercised
// without sleeping.
type testClock struct {
	micros uint64
}

func (c *testClock) now() uint64 { return c.micros }

func (c *testClock) advance(d time.Duration) { c.micros += uint64(d.Microseconds()) }

func newTestStore(t *testing.T, opts Options) (*Store, *testClock) {
	t.Helper()
	clock := &testClock{micros: 1700000000000000}
	if opts.Path == "" {
		opts.Path = t.TempDir()
	}
	if opts.Fsync == pebblestore.FsyncModeUnspecified {
		opts.Fsync = pebblestore.FsyncModeAlways
	}
	opts.Now = clock.now
	s, err := Open(opts)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}

func decodeEvents(t *testing.T, env []byte) []wire.Event {
	t.Helper()
	evs, err := wire.DecodeEventList(env)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return evs
}

func TestPutGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, Options{})

	if err := s.Put("test", []byte("testval")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, found, err := s.Get("test")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || string(got) != "testval" {
		t.Fatalf("want testval, got %q (found=%v)", got, found)
	}
}

func TestGetMissingKey(t *testing.T) {
	s, _ := newTestStore(t, Options{})

	got, found, err := s.Get("missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found || len(got) != 0 {
		t.Fatalf("want empty miss, got %q (found=%v)", got, found)
	}
}

func TestPutEventStampsIngest(t *testing.T) {
	s, clock := newTestStore(t, Options{})

	micros, err := s.PutEvent(wire.Event{IngestTS: 42, EventTS: 1699999999000000, EventType: "tornado_warning", Data: "KTOP"})
	if err != nil {
		t.Fatalf("put event: %v", err)
	}
	if micros != clock.micros {
		t.Fatalf("want assigned %d, got %d", clock.micros, micros)
	}

	env, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	evs := decodeEvents(t, env)
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %d", len(evs))
	}
	if evs[0].IngestTS != micros {
		t.Fatalf("stored ingest %d, want %d", evs[0].IngestTS, micros)
	}
	if evs[0].EventTS != 1699999999000000 || evs[0].EventType != "tornado_warning" {
		t.Fatalf("record fields lost: %+v", evs[0])
	}
}

func TestEventsComeBackInIngestOrder(t *testing.T) {
	s, clock := newTestStore(t, Options{})

	for _, data := range []string{"a", "b", "c"} {
		if _, err := s.PutEvent(wire.Event{EventType: "report", Data: data}); err != nil {
			t.Fatalf("put %s: %v", data, err)
		}
		clock.advance(time.Millisecond)
	}

	env, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	evs := decodeEvents(t, env)
	if len(evs) != 3 {
		t.Fatalf("want 3 events, got %d", len(evs))
	}
	for i := 1; i < len(evs); i++ {
		if evs[i].IngestTS <= evs[i-1].IngestTS {
			t.Fatalf("not ascending at %d: %d then %d", i, evs[i-1].IngestTS, evs[i].IngestTS)
		}
	}
	if evs[0].Data != "a" || evs[2].Data != "c" {
		t.Fatalf("unexpected order: %+v", evs)
	}
}

func TestThresholdScanDropsStaleEvents(t *testing.T) {
	s, clock := newTestStore(t, Options{EventThreshold: time.Second})

	if _, err := s.PutEvent(wire.Event{EventType: "report", Data: "stale"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	clock.advance(1100 * time.Millisecond)
	fresh, err := s.PutEvent(wire.Event{EventType: "report", Data: "fresh"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	env, err := s.GetEvents()
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	evs := decodeEvents(t, env)
	if len(evs) != 1 {
		t.Fatalf("want only the fresh event, got %d", len(evs))
	}
	if evs[0].IngestTS != fresh || evs[0].Data != "fresh" {
		t.Fatalf("wrong survivor: %+v", evs[0])
	}
}

func TestResumeScanExcludesCursor(t *testing.T) {
	s, clock := newTestStore(t, Options{})

	var stamps []uint64
	for _, data := range []string{"first", "second", "third"} {
		micros, err := s.PutEvent(wire.Event{EventType: "report", Data: data})
		if err != nil {
			t.Fatalf("put %s: %v", data, err)
		}
		stamps = append(stamps, micros)
		clock.advance(time.Millisecond)
	}

	env, err := s.GetEventsAfter(stamps[1])
	if err != nil {
		t.Fatalf("get after: %v", err)
	}
	evs := decodeEvents(t, env)
	if len(evs) != 1 {
		t.Fatalf("want 1 event after cursor, got %d", len(evs))
	}
	if evs[0].Data != "third" {
		t.Fatalf("want third, got %q", evs[0].Data)
	}

	env, err = s.GetEventsAfter(stamps[2])
	if err != nil {
		t.Fatalf("get after last: %v", err)
	}
	if got := decodeEvents(t, env); len(got) != 0 {
		t.Fatalf("want empty after last cursor, got %d", len(got))
	}
}

func TestGetAllIgnoresThreshold(t *testing.T) {
	s, clock := newTestStore(t, Options{EventThreshold: time.Second})

	if _, err := s.PutEvent(wire.Event{EventType: "report", Data: "old"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	clock.advance(time.Hour)
	if _, err := s.PutEvent(wire.Event{EventType: "report", Data: "new"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	env, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if got := decodeEvents(t, env); len(got) != 2 {
		t.Fatalf("want 2 events, got %d", len(got))
	}
}

func TestZeroResultEnvelope(t *testing.T) {
	s, _ := newTestStore(t, Options{})

	env, err := s.GetEvents()
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if !bytes.Equal(env, make([]byte, 8)) {
		t.Fatalf("want 8 zero bytes, got %v", env)
	}
	if got := decodeEvents(t, env); len(got) != 0 {
		t.Fatalf("want empty list, got %d", len(got))
	}
}

func TestSameMicroLastWriteWins(t *testing.T) {
	s, _ := newTestStore(t, Options{})

	if _, err := s.PutEvent(wire.Event{EventType: "report", Data: "first"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.PutEvent(wire.Event{EventType: "report", Data: "second"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	env, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	evs := decodeEvents(t, env)
	if len(evs) != 1 {
		t.Fatalf("want 1 event on key collision, got %d", len(evs))
	}
	if evs[0].Data != "second" {
		t.Fatalf("want second write, got %q", evs[0].Data)
	}
}

func TestFetchFailureScan(t *testing.T) {
	s, clock := newTestStore(t, Options{FetchFailureThreshold: time.Minute})

	if err := s.PutFetchFailure(wire.FetchFailure{Source: "nws_api", Reason: "timeout"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	clock.advance(2 * time.Minute)
	if err := s.PutFetchFailure(wire.FetchFailure{Source: "nws_api", Reason: "503"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	env, err := s.GetFetchFailures()
	if err != nil {
		t.Fatalf("get failures: %v", err)
	}
	ffs, err := wire.DecodeFetchFailureList(env)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(ffs) != 1 {
		t.Fatalf("want 1 failure inside window, got %d", len(ffs))
	}
	if ffs[0].Reason != "503" {
		t.Fatalf("want 503, got %q", ffs[0].Reason)
	}
	if ffs[0].IngestTS != clock.micros {
		t.Fatalf("want stamped %d, got %d", clock.micros, ffs[0].IngestTS)
	}
}

func TestReopenFindsPriorData(t *testing.T) {
	dir := t.TempDir()
	clock := &testClock{micros: 1700000000000000}

	s, err := Open(Options{Path: dir, Fsync: pebblestore.FsyncModeAlways, Now: clock.now})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.PutEvent(wire.Event{EventType: "report", Data: "durable"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(Options{Path: dir, Fsync: pebblestore.FsyncModeAlways, Now: clock.now})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = s2.Close() })

	env, err := s2.GetAllEvents()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	evs := decodeEvents(t, env)
	if len(evs) != 1 || evs[0].Data != "durable" {
		t.Fatalf("lost data across reopen: %+v", evs)
	}
}
