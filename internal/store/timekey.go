package store

import "strconv"

// Time-ordered namespaces key each record by the decimal string of its
// ingest timestamp in micros. For timestamps with the same digit count,
// byte-lexicographic order of the keys equals numeric order, and micros
// since epoch hold their digit count for centuries. The scheme must match
// existing on-disk data, so any alternative encoding needs a migration.

// timeKey renders micros as its decimal key bytes.
func timeKey(micros uint64) []byte {
	return strconv.AppendUint(nil, micros, 10)
}

// parseTimeKey is the inverse of timeKey.
func parseTimeKey(key []byte) (uint64, error) {
	return strconv.ParseUint(string(key), 10, 64)
}
