// Package wire implements the wx-storage byte protocol.
//
// # Framing
//
// Every request is one opcode byte followed by an operation-specific payload:
//   - [op(1B)][payload]
//
// Every response is one status byte followed by a result payload:
//   - [0x00][result bytes]          success
//   - [0x01][u64 len | utf-8 msg]   error
//
// # Primitives
//
// Integers are unsigned 64-bit little-endian. Strings and byte blobs carry a
// u64 length prefix followed by the raw bytes. Records concatenate their
// fields with no padding:
//   - event:         ingest_ts(8B) | event_ts(8B) | event_type(str) | data(str)
//   - fetch failure: ingest_ts(8B) | source(str) | reason(str)
//   - list envelope: count(8B) | record bytes concatenated
//
// A zero-count envelope is eight zero bytes and decodes as an empty list.
// Every decode is fallible and returns a *DecodeError on malformed input.
//
// Usage:
//
//	req := wire.EncodeRequest(wire.OpPut, wire.EncodePair("k", []byte("v")))
//	status, payload, _ := wire.DecodeResponse(reply)
//	if status == wire.StatusError {
//	    msg, _ := wire.DecodeErrorMessage(payload)
//	    _ = msg
//	}
package wire
