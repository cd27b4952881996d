// Package client provides a minimal RESP client for respkv-cli.
package client

import (
	"bufio"
	"errors"
	"net"
	"time"

	"github.com/davrk/respkv/internal/resp"
)

// DefaultTimeout bounds dialing and each request round trip.
const DefaultTimeout = 5 * time.Second

// Client is a RESP connection to one server. It is not safe for
// concurrent use; each goroutine should dial its own.
type Client struct {
	conn    net.Conn
	bw      *bufio.Writer
	buf     []byte
	timeout time.Duration
}

// Dial connects to a respkv server with the default timeout.
func Dial(addr string) (*Client, error) {
	return DialTimeout(addr, DefaultTimeout)
}

// DialTimeout connects to a respkv server.
func DialTimeout(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn:    conn,
		bw:      bufio.NewWriter(conn),
		buf:     make([]byte, 0, 4096),
		timeout: timeout,
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends one command as an array of bulk strings and reads the
// reply. Error replies come back as a Value, not a Go error; the
// error return covers transport and framing failures only.
func (c *Client) Do(args ...string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, errors.New("client: empty command")
	}

	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.BulkString(a)
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return resp.Value{}, err
	}
	if _, err := c.bw.Write(resp.Array(elems...).Encode()); err != nil {
		return resp.Value{}, err
	}
	if err := c.bw.Flush(); err != nil {
		return resp.Value{}, err
	}

	return c.readReply()
}

// readReply accumulates bytes until one whole value frames.
func (c *Client) readReply() (resp.Value, error) {
	chunk := make([]byte, 4096)
	deadline := time.Now().Add(c.timeout)

	for {
		if len(c.buf) > 0 {
			v, rest, err := resp.Decode(c.buf)
			if err == nil {
				n := copy(c.buf, rest)
				c.buf = c.buf[:n]
				return v, nil
			}
			if !errors.Is(err, resp.ErrIncomplete) {
				return resp.Value{}, err
			}
		}

		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return resp.Value{}, err
		}
		n, err := c.conn.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
			continue
		}
		if err != nil {
			return resp.Value{}, err
		}
	}
}
