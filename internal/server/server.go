package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/go-zeromq/zmq4"

	"github.com/rhurkes/wx-storage/internal/command"
	"github.com/rhurkes/wx-storage/internal/store"
	logpkg "github.com/rhurkes/wx-storage/pkg/log"
	"github.com/rhurkes/wx-storage/pkg/wire"
)

// Server answers wx-storage requests over a ZeroMQ REP socket. The socket
// carries one request at a time and every request gets exactly one reply.
type Server struct {
	store *store.Store
	log   logpkg.Logger

	mu     sync.Mutex
	sock   zmq4.Socket
	closed bool
}

// New creates a Server around an open store.
func New(st *store.Store, logger logpkg.Logger) *Server {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Server{store: st, log: logger}
}

// ListenAndServe binds endpoint and serves until ctx is cancelled or the
// socket fails. Request-level failures become error replies and the loop
// keeps serving; only socket-level failures stop it.
func (s *Server) ListenAndServe(ctx context.Context, endpoint string) error {
	sock := zmq4.NewRep(ctx)
	if err := sock.Listen(endpoint); err != nil {
		return fmt.Errorf("listen %s: %w", endpoint, err)
	}
	s.mu.Lock()
	s.sock = sock
	s.mu.Unlock()
	defer s.Close()

	s.log.Info("listening", logpkg.Str("endpoint", endpoint))

	for {
		msg, err := sock.Recv()
		if err != nil {
			if ctx.Err() != nil || s.isClosed() {
				return nil
			}
			return fmt.Errorf("recv: %w", err)
		}
		if err := sock.Send(zmq4.NewMsg(s.handle(msg.Bytes()))); err != nil {
			if ctx.Err() != nil || s.isClosed() {
				return nil
			}
			return fmt.Errorf("send: %w", err)
		}
	}
}

// handle runs one request to completion and encodes the reply.
func (s *Server) handle(req []byte) []byte {
	op := opLabel(req)
	requestsTotal(op).Inc()

	result, err := command.Dispatch(req, s.store)
	if err != nil {
		errorsTotal(op).Inc()
		s.log.Error("request failed", logpkg.Str("op", op), logpkg.Err(err))
		return wire.EncodeErrorResponse(err.Error())
	}
	s.log.Debug("request served", logpkg.Str("op", op), logpkg.Int("bytes", len(result)))
	return wire.EncodeResponse(result)
}

// Addr returns the bound listener address, or nil before ListenAndServe.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sock == nil {
		return nil
	}
	return s.sock.Addr()
}

// Close shuts the socket. Safe to call more than once.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.sock != nil {
		_ = s.sock.Close()
	}
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func opLabel(req []byte) string {
	if len(req) == 0 {
		return "empty"
	}
	return wire.Opcode(req[0]).String()
}
