package client

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/rhurkes/wx-storage/pkg/wire"
)

// RemoteError is a failure the server reported in an error reply.
type RemoteError struct {
	Msg string
}

func (e *RemoteError) Error() string { return e.Msg }

// Client talks to a wx-storage server over a ZeroMQ REQ socket. The socket
// carries one request at a time; a Client is not safe for concurrent use.
type Client struct {
	sock zmq4.Socket
}

// Dial connects to a server endpoint such as tcp://127.0.0.1:31337.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	sock := zmq4.NewReq(ctx)
	if err := sock.Dial(endpoint); err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	return &Client{sock: sock}, nil
}

// Close releases the socket.
func (c *Client) Close() error {
	return c.sock.Close()
}

// do sends one framed request and splits the reply by status.
func (c *Client) do(op wire.Opcode, payload []byte) ([]byte, error) {
	if err := c.sock.Send(zmq4.NewMsg(wire.EncodeRequest(op, payload))); err != nil {
		return nil, fmt.Errorf("send %s: %w", op, err)
	}
	reply, err := c.sock.Recv()
	if err != nil {
		return nil, fmt.Errorf("recv %s: %w", op, err)
	}
	status, result, err := wire.DecodeResponse(reply.Bytes())
	if err != nil {
		return nil, err
	}
	switch status {
	case wire.StatusOK:
		return result, nil
	case wire.StatusError:
		msg, err := wire.DecodeErrorMessage(result)
		if err != nil {
			return nil, err
		}
		return nil, &RemoteError{Msg: msg}
	default:
		return nil, fmt.Errorf("unexpected status byte %d", status)
	}
}

// Put stores value under key and returns the key bytes the server wrote.
func (c *Client) Put(key string, value []byte) ([]byte, error) {
	return c.do(wire.OpPut, wire.EncodePair(key, value))
}

// Get fetches the value for key. Missing keys return empty bytes.
func (c *Client) Get(key string) ([]byte, error) {
	return c.do(wire.OpGet, []byte(key))
}

// PutEvent ships ev and returns the ingest micros the server assigned.
func (c *Client) PutEvent(ev wire.Event) (uint64, error) {
	result, err := c.do(wire.OpPutEvent, wire.EncodeEvent(ev))
	if err != nil {
		return 0, err
	}
	return wire.DecodeUint64(result)
}

// Events returns events inside the server's retention window.
func (c *Client) Events() ([]wire.Event, error) {
	env, err := c.do(wire.OpGetEvents, nil)
	if err != nil {
		return nil, err
	}
	return wire.DecodeEventList(env)
}

// EventsAfter returns events with ingest timestamps strictly greater than
// cursor, the last stamp the caller has already seen.
func (c *Client) EventsAfter(cursor uint64) ([]wire.Event, error) {
	env, err := c.do(wire.OpGetEvents, wire.EncodeUint64(cursor))
	if err != nil {
		return nil, err
	}
	return wire.DecodeEventList(env)
}

// AllEvents returns every event the server holds, regardless of age.
func (c *Client) AllEvents() ([]wire.Event, error) {
	env, err := c.do(wire.OpGetAllEvents, nil)
	if err != nil {
		return nil, err
	}
	return wire.DecodeEventList(env)
}

// PutFetchFailure records one failed upstream fetch.
func (c *Client) PutFetchFailure(ff wire.FetchFailure) error {
	_, err := c.do(wire.OpPutFetchFailure, wire.EncodeFetchFailure(ff))
	return err
}

// FetchFailures returns failures inside the server's retention window.
func (c *Client) FetchFailures() ([]wire.FetchFailure, error) {
	env, err := c.do(wire.OpGetFetchFailures, nil)
	if err != nil {
		return nil, err
	}
	return wire.DecodeFetchFailureList(env)
}
