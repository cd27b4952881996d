package respserver

import (
	"bufio"
	"net"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/davrk/respkv/internal/resp"
)

// Conn represents a single client connection.
//
// buf accumulates raw bytes read from the socket until they frame at
// least one whole request; the decode remainder stays in buf so
// pipelined requests already received are served without further I/O.
type Conn struct {
	netConn net.Conn
	bw      *bufio.Writer
	buf     []byte

	// id correlates all log lines of one connection.
	id string

	closed atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		netConn: c,
		bw:      bufio.NewWriter(c),
		buf:     make([]byte, 0, 4096),
		id:      ulid.Make().String(),
	}
}

func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// write buffers the encoding of one reply value.
func (c *Conn) write(v resp.Value) error {
	_, err := c.bw.Write(v.Encode())
	return err
}

// flush pushes buffered replies to the socket.
func (c *Conn) flush() error {
	return c.bw.Flush()
}

// consume drops the decoded prefix of the request buffer, keeping the
// remainder for the next frame. The remainder is compacted to the
// front so the buffer does not pin consumed bytes.
func (c *Conn) consume(rest []byte) {
	if len(rest) == 0 {
		c.buf = c.buf[:0]
		return
	}
	n := copy(c.buf, rest)
	c.buf = c.buf[:n]
}
