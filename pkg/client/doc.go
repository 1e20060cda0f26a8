// Package client provides a typed wx-storage client over ZeroMQ REQ.
//
// Usage:
//
//	c, err := client.Dial(ctx, "tcp://127.0.0.1:31337")
//	if err != nil { /* handle */ }
//	defer c.Close()
//
//	stamp, _ := c.PutEvent(wire.Event{EventType: "tornado_warning", Data: "KTOP"})
//	fresh, _ := c.EventsAfter(stamp - 1)
//	_ = fresh
//
// Server-side failures come back as *RemoteError carrying the server's
// message verbatim.
package client
