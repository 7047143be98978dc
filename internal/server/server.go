package server

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/junealder/eventide/internal/resp"
	"go.uber.org/zap"
)

// Server accepts TCP connections and drives one read/execute/reply loop
// per client against a shared engine.
type Server struct {
	engine   *Engine
	logger   *zap.Logger
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer creates a server around an engine.
func NewServer(engine *Engine, logger *zap.Logger) *Server {
	return &Server{
		engine: engine,
		logger: logger,
	}
}

// Listen binds the server to the given address.
func (s *Server) Listen(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address. Useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve runs the accept loop until the listener is closed.
func (s *Server) Serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("accept error", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// Shutdown closes the listener and waits for in-flight connections,
// giving up when ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.listener.Close(); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleConnection handles a connection for a single client
func (s *Server) handleConnection(conn net.Conn) {
	if s.logger.Core().Enabled(zap.DebugLevel) {
		s.logger.Debug("client connected", zap.String("addr", conn.RemoteAddr().String()))
	}

	peer := NewPeer(conn)
	defer func() {
		peer.Close() //nolint:errcheck
		if s.logger.Core().Enabled(zap.DebugLevel) {
			s.logger.Debug("client disconnected", zap.String("addr", conn.RemoteAddr().String()))
		}
	}()

	for {
		cmd, err := peer.ReadCommand()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("read command failed", zap.Error(err))
				// tell the client what went wrong before dropping the
				// connection; the stream may be desynchronized
				peer.Send(resp.MakeError(err.Error())) //nolint:errcheck
				peer.Flush()                           //nolint:errcheck
			}
			return
		}

		if len(cmd) == 0 {
			continue
		}

		name := strings.ToUpper(cmd[0])
		result := s.engine.Execute(name, cmd[1:])

		if err = peer.Send(result); err != nil {
			s.logger.Error("error writing response", zap.Error(err))
			return
		}

		if peer.InputBuffered() == 0 {
			if err := peer.Flush(); err != nil {
				return
			}
		}
	}
}
