// Package store implements the wx-storage persistence core.
//
// # Overview
//
// One Store owns three independent namespaces inside a single Pebble
// database:
//   - default        (caller-keyed values)
//   - events         (weather events, keyed by ingest time)
//   - fetch_failures (fetch failures, keyed by ingest time)
//
// Time-ordered records are keyed by the decimal string of their ingest
// timestamp in micros, so forward scans yield ingest order. Reads over the
// time-ordered namespaces produce a count-prefixed envelope of raw record
// bytes:
//   - count(8B LE) | record bytes concatenated
//
// Retention is applied at query time: threshold scans seek to
// now-threshold and read to the end. Nothing is deleted.
//
// Usage:
//
//	s, _ := store.Open(store.Options{Path: dir})
//	defer s.Close()
//	micros, _ := s.PutEvent(wire.Event{EventType: "tornado_warning"})
//	env, _ := s.GetEventsAfter(micros - 1)
//	_ = env
package store
