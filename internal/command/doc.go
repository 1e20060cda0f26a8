// Package command maps request opcodes onto store operations.
//
// The first request byte selects the operation; the rest is its payload.
// Dispatch translates every failure mode into a single error channel:
// protocol errors for unroutable requests, decode errors for malformed
// payloads, and engine errors surfaced as-is. The transport encodes whatever
// comes back and keeps serving.
package command
