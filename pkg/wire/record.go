package wire

// Event is one weather event as stored and shipped on the wire. IngestTS is
// assigned by the store at write time; any value supplied by the producer is
// overwritten.
type Event struct {
	IngestTS  uint64 // micros since epoch, store-assigned
	EventTS   uint64 // micros since epoch, producer-reported
	EventType string
	Data      string
}

// AppendEvent appends the encoded event to dst.
func AppendEvent(dst []byte, ev Event) []byte {
	dst = AppendUint64(dst, ev.IngestTS)
	dst = AppendUint64(dst, ev.EventTS)
	dst = AppendString(dst, ev.EventType)
	return AppendString(dst, ev.Data)
}

// EncodeEvent returns the encoded event.
func EncodeEvent(ev Event) []byte {
	return AppendEvent(make([]byte, 0, 4*uint64Size+len(ev.EventType)+len(ev.Data)), ev)
}

// ReadEvent consumes one event record and returns it with the remaining bytes.
func ReadEvent(b []byte) (Event, []byte, error) {
	var (
		ev  Event
		err error
	)
	if ev.IngestTS, b, err = ReadUint64(b); err != nil {
		return Event{}, nil, err
	}
	if ev.EventTS, b, err = ReadUint64(b); err != nil {
		return Event{}, nil, err
	}
	if ev.EventType, b, err = ReadString(b); err != nil {
		return Event{}, nil, err
	}
	if ev.Data, b, err = ReadString(b); err != nil {
		return Event{}, nil, err
	}
	return ev, b, nil
}

// DecodeEvent decodes one event record. Bytes past the record are ignored.
func DecodeEvent(b []byte) (Event, error) {
	ev, _, err := ReadEvent(b)
	return ev, err
}

// DecodeEventList decodes a count-prefixed envelope of event records.
func DecodeEventList(b []byte) ([]Event, error) {
	count, rest, err := ReadUint64(b)
	if err != nil {
		return nil, err
	}
	if count > uint64(len(rest)) {
		return nil, decodeErrorf("event count %d exceeds %d payload bytes", count, len(rest))
	}
	events := make([]Event, 0, count)
	for i := uint64(0); i < count; i++ {
		var ev Event
		if ev, rest, err = ReadEvent(rest); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// FetchFailure records one upstream fetch that produced no data. IngestTS is
// store-assigned like Event.IngestTS.
type FetchFailure struct {
	IngestTS uint64 // micros since epoch, store-assigned
	Source   string
	Reason   string
}

// AppendFetchFailure appends the encoded record to dst.
func AppendFetchFailure(dst []byte, ff FetchFailure) []byte {
	dst = AppendUint64(dst, ff.IngestTS)
	dst = AppendString(dst, ff.Source)
	return AppendString(dst, ff.Reason)
}

// EncodeFetchFailure returns the encoded record.
func EncodeFetchFailure(ff FetchFailure) []byte {
	return AppendFetchFailure(make([]byte, 0, 3*uint64Size+len(ff.Source)+len(ff.Reason)), ff)
}

// ReadFetchFailure consumes one record and returns it with the remaining bytes.
func ReadFetchFailure(b []byte) (FetchFailure, []byte, error) {
	var (
		ff  FetchFailure
		err error
	)
	if ff.IngestTS, b, err = ReadUint64(b); err != nil {
		return FetchFailure{}, nil, err
	}
	if ff.Source, b, err = ReadString(b); err != nil {
		return FetchFailure{}, nil, err
	}
	if ff.Reason, b, err = ReadString(b); err != nil {
		return FetchFailure{}, nil, err
	}
	return ff, b, nil
}

// DecodeFetchFailure decodes one record. Bytes past the record are ignored.
func DecodeFetchFailure(b []byte) (FetchFailure, error) {
	ff, _, err := ReadFetchFailure(b)
	return ff, err
}

// DecodeFetchFailureList decodes a count-prefixed envelope of records.
func DecodeFetchFailureList(b []byte) ([]FetchFailure, error) {
	count, rest, err := ReadUint64(b)
	if err != nil {
		return nil, err
	}
	if count > uint64(len(rest)) {
		return nil, decodeErrorf("fetch failure count %d exceeds %d payload bytes", count, len(rest))
	}
	failures := make([]FetchFailure, 0, count)
	for i := uint64(0); i < count; i++ {
		var ff FetchFailure
		if ff, rest, err = ReadFetchFailure(rest); err != nil {
			return nil, err
		}
		failures = append(failures, ff)
	}
	return failures, nil
}
