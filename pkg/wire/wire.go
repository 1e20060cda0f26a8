package wire

import (
	"encoding/binary"
	"fmt"
)

const uint64Size = 8

// DecodeError reports bytes that do not parse as the expected wire shape.
// Decodes never panic on short or malformed input; they return one of these.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string { return e.Msg }

func decodeErrorf(format string, args ...interface{}) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...)}
}

// AppendUint64 appends v as 8 little-endian bytes.
func AppendUint64(dst []byte, v uint64) []byte {
	var b [uint64Size]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// EncodeUint64 returns the 8-byte little-endian encoding of v.
func EncodeUint64(v uint64) []byte {
	return AppendUint64(make([]byte, 0, uint64Size), v)
}

// ReadUint64 consumes 8 little-endian bytes from b and returns the value and
// the remaining bytes.
func ReadUint64(b []byte) (uint64, []byte, error) {
	if len(b) < uint64Size {
		return 0, nil, decodeErrorf("data too short for u64 (want %d bytes, got %d)", uint64Size, len(b))
	}
	return binary.LittleEndian.Uint64(b[:uint64Size]), b[uint64Size:], nil
}

// DecodeUint64 decodes a buffer that must hold exactly one u64. Cursors on
// the wire use this shape.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) != uint64Size {
		return 0, decodeErrorf("u64 must be exactly %d bytes, got %d", uint64Size, len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

// AppendBytes appends a u64 length prefix followed by p.
func AppendBytes(dst []byte, p []byte) []byte {
	dst = AppendUint64(dst, uint64(len(p)))
	return append(dst, p...)
}

// ReadBytes consumes one length-prefixed blob and returns it along with the
// remaining bytes. The returned slice aliases b; callers that retain it past
// the life of b must copy.
func ReadBytes(b []byte) ([]byte, []byte, error) {
	n, rest, err := ReadUint64(b)
	if err != nil {
		return nil, nil, err
	}
	if n > uint64(len(rest)) {
		return nil, nil, decodeErrorf("declared length %d exceeds remaining %d bytes", n, len(rest))
	}
	return rest[:n], rest[n:], nil
}

// AppendString appends a u64 length prefix followed by the bytes of s.
func AppendString(dst []byte, s string) []byte {
	dst = AppendUint64(dst, uint64(len(s)))
	return append(dst, s...)
}

// ReadString consumes one length-prefixed string and returns it along with
// the remaining bytes.
func ReadString(b []byte) (string, []byte, error) {
	p, rest, err := ReadBytes(b)
	if err != nil {
		return "", nil, err
	}
	return string(p), rest, nil
}
