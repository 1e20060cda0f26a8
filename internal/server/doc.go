// Package server runs the wx-storage request listener.
//
// The listener is a ZeroMQ REP socket: strict one-request-one-reply
// alternation, a single request in flight end to end. Raw request bytes go
// through the command dispatcher; results and errors come back as
// [status byte][payload] replies. A failed request never stops the loop.
package server
