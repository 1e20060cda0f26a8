// Package client provides the `wx-storage` command-line client.
//
// The CLI talks to a running wx-storage server over its ZeroMQ REQ/REP
// endpoint to perform common operations from a terminal. It is primarily
// intended for developers and operators.
//
// Installation
//
//	go install github.com/rhurkes/wx-storage/cmd/wx-storage@latest
//
// # Address configuration
//
// The server endpoint is discovered by the application that embeds the
// commands via an EndpointFunc. When using the standalone binary, it
// defaults to tcp://127.0.0.1:31337 and can be overridden with --addr
// or the WX_ADDR environment variable.
//
// Usage
//
//	wx-storage kv put last_run 2026-08-22T00:00:00Z
//	wx-storage kv get last_run
//
//	wx-storage events put --type report --data '{"hail_in":2.0}'
//
//	# List events inside the retention window
//	wx-storage events list
//	# Resume after a previously seen ingest timestamp
//	wx-storage events list --after 1726833600000000
//	# Everything ever ingested, ignoring the window
//	wx-storage events list --all
//
//	wx-storage failures put --source nws_api --reason timeout
//	wx-storage failures list
//
// Notes
//
//   - events list prints one JSON object per line, oldest first.
//   - ingest timestamps are unix epoch microseconds assigned by the
//     server; --after takes the ingest_ts of the last record already
//     processed and the listing resumes strictly after it.
package client
