package wire

// Opcode is the first byte of every request and selects the store operation.
type Opcode byte

const (
	OpPut Opcode = iota
	OpGet
	OpPutEvent
	OpGetEvents
	OpGetAllEvents
	OpPutFetchFailure
	OpGetFetchFailures
)

// String returns the lowercase operation name, or "unknown" for opcodes
// outside the table.
func (o Opcode) String() string {
	switch o {
	case OpPut:
		return "put"
	case OpGet:
		return "get"
	case OpPutEvent:
		return "put_event"
	case OpGetEvents:
		return "get_events"
	case OpGetAllEvents:
		return "get_all_events"
	case OpPutFetchFailure:
		return "put_fetch_failure"
	case OpGetFetchFailures:
		return "get_fetch_failures"
	default:
		return "unknown"
	}
}

// Response status bytes. No other values exist on the wire.
const (
	StatusOK    byte = 0x00
	StatusError byte = 0x01
)

// EncodeRequest frames an opcode and payload as request bytes.
func EncodeRequest(op Opcode, payload []byte) []byte {
	out := make([]byte, 0, 1+len(payload))
	out = append(out, byte(op))
	return append(out, payload...)
}

// EncodePair encodes a (key, value) tuple as carried by Put requests.
func EncodePair(key string, value []byte) []byte {
	out := make([]byte, 0, 2*uint64Size+len(key)+len(value))
	out = AppendString(out, key)
	return AppendBytes(out, value)
}

// DecodePair decodes a (key, value) tuple. Bytes past the tuple are ignored.
func DecodePair(b []byte) (string, []byte, error) {
	key, rest, err := ReadString(b)
	if err != nil {
		return "", nil, err
	}
	value, _, err := ReadBytes(rest)
	if err != nil {
		return "", nil, err
	}
	return key, value, nil
}

// EncodeResponse frames a successful result.
func EncodeResponse(result []byte) []byte {
	out := make([]byte, 0, 1+len(result))
	out = append(out, StatusOK)
	return append(out, result...)
}

// EncodeErrorResponse frames a failure with its message as the payload.
func EncodeErrorResponse(msg string) []byte {
	out := make([]byte, 0, 1+uint64Size+len(msg))
	out = append(out, StatusError)
	return AppendString(out, msg)
}

// DecodeResponse splits a reply into its status byte and payload.
func DecodeResponse(b []byte) (byte, []byte, error) {
	if len(b) == 0 {
		return 0, nil, &DecodeError{Msg: "empty response"}
	}
	return b[0], b[1:], nil
}

// DecodeErrorMessage decodes the payload of a StatusError response.
func DecodeErrorMessage(b []byte) (string, error) {
	s, _, err := ReadString(b)
	return s, err
}
