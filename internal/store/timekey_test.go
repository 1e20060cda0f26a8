package store

import (
	"bytes"
	"testing"
)

func TestTimeKeyRoundTrip(t *testing.T) {
	for _, micros := range []uint64{0, 1, 999999, 1700000000000000, ^uint64(0)} {
		got, err := parseTimeKey(timeKey(micros))
		if err != nil {
			t.Fatalf("parse %d: %v", micros, err)
		}
		if got != micros {
			t.Fatalf("want %d, got %d", micros, got)
		}
	}
}

func TestTimeKeyLexicographicOrder(t *testing.T) {
	// Same digit count: byte order equals numeric order.
	a := timeKey(1700000000000000)
	b := timeKey(1700000000000001)
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("want %s < %s", a, b)
	}
}

func TestParseTimeKeyRejectsGarbage(t *testing.T) {
	if _, err := parseTimeKey([]byte("12x4")); err == nil {
		t.Fatal("want error for non-decimal key")
	}
}
