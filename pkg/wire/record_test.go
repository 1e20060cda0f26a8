package wire

import (
	"testing"
)

func TestEventRoundTrip(t *testing.T) {
	ev := Event{IngestTS: 1500000000000001, EventTS: 1500000000000000, EventType: "tornado_warning", Data: `{"wfo":"TOP"}`}
	got, err := DecodeEvent(EncodeEvent(ev))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != ev {
		t.Fatalf("want %+v, got %+v", ev, got)
	}
}

func TestEventDecodeTruncated(t *testing.T) {
	b := EncodeEvent(Event{EventType: "report", Data: "hail 2in"})
	for _, n := range []int{0, 7, 15, 20} {
		if _, err := DecodeEvent(b[:n]); err == nil {
			t.Fatalf("want error at %d bytes", n)
		}
	}
}

func TestEventListRoundTrip(t *testing.T) {
	evs := []Event{
		{IngestTS: 10, EventTS: 9, EventType: "a", Data: "1"},
		{IngestTS: 11, EventTS: 10, EventType: "b", Data: "2"},
		{IngestTS: 12, EventTS: 11, EventType: "c", Data: "3"},
	}
	env := AppendUint64(nil, uint64(len(evs)))
	for _, ev := range evs {
		env = AppendEvent(env, ev)
	}
	got, err := DecodeEventList(env)
	if err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 events, got %d", len(got))
	}
	for i := range evs {
		if got[i] != evs[i] {
			t.Fatalf("event %d: want %+v, got %+v", i, evs[i], got[i])
		}
	}
}

func TestEventListZeroCount(t *testing.T) {
	got, err := DecodeEventList(EncodeUint64(0))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty list, got %d", len(got))
	}
}

func TestEventListCorruptCount(t *testing.T) {
	env := AppendUint64(nil, ^uint64(0))
	env = AppendEvent(env, Event{EventType: "a"})
	if _, err := DecodeEventList(env); err == nil {
		t.Fatal("want error for absurd count")
	}
}

func TestFetchFailureRoundTrip(t *testing.T) {
	ff := FetchFailure{IngestTS: 99, Source: "nws_api", Reason: "timeout after 30s"}
	got, err := DecodeFetchFailure(EncodeFetchFailure(ff))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != ff {
		t.Fatalf("want %+v, got %+v", ff, got)
	}
}

func TestFetchFailureListRoundTrip(t *testing.T) {
	env := AppendUint64(nil, 2)
	env = AppendFetchFailure(env, FetchFailure{IngestTS: 1, Source: "a", Reason: "x"})
	env = AppendFetchFailure(env, FetchFailure{IngestTS: 2, Source: "b", Reason: "y"})
	got, err := DecodeFetchFailureList(env)
	if err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 failures, got %d", len(got))
	}
	if got[1].Source != "b" {
		t.Fatalf("want b, got %q", got[1].Source)
	}
}
