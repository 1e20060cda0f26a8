package command

import (
	"github.com/rhurkes/wx-storage/internal/store"
	"github.com/rhurkes/wx-storage/pkg/wire"
)

// ProtocolError reports a request the dispatcher cannot route: an empty
// message or an opcode outside the table. Its message is the exact text
// surfaced to callers.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return e.Msg }

var (
	errInvalidLength  = &ProtocolError{Msg: "invalid message length"}
	errUnknownCommand = &ProtocolError{Msg: "unknown command"}
)

// Dispatch routes one raw request to its store operation and returns the
// success payload. Every failure mode (protocol, decode, storage) comes back
// as an error for the transport to encode; none of them crash the process.
func Dispatch(req []byte, st *store.Store) ([]byte, error) {
	if len(req) == 0 {
		return nil, errInvalidLength
	}
	payload := req[1:]

	switch op := wire.Opcode(req[0]); op {
	case wire.OpPut:
		key, value, err := wire.DecodePair(payload)
		if err != nil {
			return nil, err
		}
		if err := st.Put(key, value); err != nil {
			return nil, err
		}
		return []byte(key), nil

	case wire.OpGet:
		value, _, err := st.Get(string(payload))
		if err != nil {
			return nil, err
		}
		return value, nil

	case wire.OpPutEvent:
		ev, err := wire.DecodeEvent(payload)
		if err != nil {
			return nil, err
		}
		micros, err := st.PutEvent(ev)
		if err != nil {
			return nil, err
		}
		return wire.EncodeUint64(micros), nil

	case wire.OpGetEvents:
		if len(payload) == 0 {
			return st.GetEvents()
		}
		cursor, err := wire.DecodeUint64(payload)
		if err != nil {
			return nil, err
		}
		return st.GetEventsAfter(cursor)

	case wire.OpGetAllEvents:
		return st.GetAllEvents()

	case wire.OpPutFetchFailure:
		ff, err := wire.DecodeFetchFailure(payload)
		if err != nil {
			return nil, err
		}
		if err := st.PutFetchFailure(ff); err != nil {
			return nil, err
		}
		return nil, nil

	case wire.OpGetFetchFailures:
		return st.GetFetchFailures()

	default:
		return nil, errUnknownCommand
	}
}
