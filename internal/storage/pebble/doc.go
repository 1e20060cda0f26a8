// Package pebblestore provides a thin wrapper around Pebble with fsync policy
// and minimal metrics hooks.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeInterval,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Point ops
//	_ = db.Set([]byte("k"), []byte("v"))
//	v, found, _ := db.Get([]byte("k"))
//	_ = found
//	_ = v
package pebblestore
