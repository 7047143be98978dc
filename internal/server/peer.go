package server

import (
	"net"
	"sync"

	"github.com/junealder/eventide/internal/resp"
)

// Peer represents a connected client.
// It wraps a network connection and provides synchronized methods for
// reading commands and writing encoded replies.
type Peer struct {
	conn    net.Conn
	decoder *resp.Decoder
	encoder *resp.Encoder
	mu      sync.Mutex
}

// NewPeer initializes a new client peer from a network connection
func NewPeer(conn net.Conn) *Peer {
	return &Peer{
		conn:    conn,
		decoder: resp.NewDecoder(conn),
		encoder: resp.NewEncoder(conn),
	}
}

// Send encodes a reply into the output buffer. Replies are not flushed
// here; the connection loop flushes once the input buffer is drained.
// This method is thread-safe and can be called from multiple goroutines
func (p *Peer) Send(v resp.Value) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Write(v)
}

// ReadCommand reads and decodes the next request from the client's
// input stream as command name plus arguments.
func (p *Peer) ReadCommand() ([]string, error) {
	return p.decoder.DecodeCommand()
}

// Close terminates the underlying network connection
func (p *Peer) Close() error {
	return p.conn.Close()
}

// Flush sends all buffered data to the client
func (p *Peer) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Flush()
}

// InputBuffered returns the number of bytes that can be read from the current buffer
func (p *Peer) InputBuffered() int {
	return p.decoder.Buffered()
}
