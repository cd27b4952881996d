package respserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/davrk/respkv/internal/command"
	"github.com/davrk/respkv/internal/resp"
)

// serveConn runs the per-connection request loop: frame one value out
// of the buffer, dispatch it, write the reply, repeat. It returns when
// the peer closes the stream, a deadline fires, or framing
// desynchronizes.
func (s *Server) serveConn(ctx context.Context, c *Conn) {
	_ = ctx // reserved for cancellation integration
	defer c.Close()
	s.metrics.ConnOpened()
	defer s.metrics.ConnClosed()

	log := s.logger.With("conn_id", c.id, "remote", c.RemoteAddr().String())
	log.Debug("connection opened")
	defer log.Debug("connection closed")

	readTimeout := s.cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}
	idleTimeout := s.cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 5 * time.Minute
	}

	chunk := make([]byte, 4096)
	for {
		// Serve every whole request already buffered before touching
		// the socket again: pipelined requests must not wait on I/O.
		for len(c.buf) > 0 {
			v, rest, err := resp.Decode(c.buf)
			if errors.Is(err, resp.ErrIncomplete) {
				break
			}
			if err != nil {
				// Framing is unrecoverable once desynchronized:
				// best-effort error reply, then close.
				s.metrics.ProtocolError()
				log.Warn("protocol error", "error", err)
				_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = c.write(resp.Error("ERR protocol error: " + err.Error()))
				_ = c.flush()
				return
			}
			c.consume(rest)

			if quit := s.serveRequest(c, v, log); quit {
				_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = c.flush()
				return
			}
		}

		if err := c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := c.flush(); err != nil {
			log.Debug("write error", "error", err)
			return
		}

		// An empty buffer may stay idle between requests; a partial
		// request gets the tighter read timeout (slowloris protection).
		deadline := idleTimeout
		if len(c.buf) > 0 {
			deadline = readTimeout
		}
		if err := c.netConn.SetReadDeadline(time.Now().Add(deadline)); err != nil {
			return
		}

		n, err := c.netConn.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
			// Serve what arrived before looking at the error again; a
			// final chunk may complete a request even on EOF.
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(c.buf) > 0 {
					log.Debug("connection closed mid-request", "buffered", len(c.buf))
				}
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection timed out")
				return
			}
			log.Debug("read error", "error", err)
			return
		}
	}
}

// serveRequest parses and executes one decoded request and buffers the
// reply. It reports whether the connection should close (QUIT).
func (s *Server) serveRequest(c *Conn, v resp.Value, log *slog.Logger) bool {
	if s.limiter != nil && !s.limiter.allow(remoteIP(c.RemoteAddr())) {
		log.Warn("rate limit exceeded")
		_ = c.write(resp.Error("ERR rate limit exceeded"))
		return false
	}

	cmd, err := command.Parse(v)
	if err != nil {
		s.metrics.CommandRejected()
		log.Debug("request rejected", "error", err)
		_ = c.write(resp.Error(commandErrorReply(err)))
		return false
	}

	s.metrics.CommandExecuted(cmd.Kind.String())
	_ = c.write(Execute(cmd, s.store))
	return cmd.Kind == command.Quit
}

// commandErrorReply renders a parse failure as a RESP error string.
func commandErrorReply(err error) string {
	if errors.Is(err, command.ErrNotACommand) {
		return "ERR expected an array of bulk strings"
	}
	// WrongArityError and UnknownCommandError already read like Redis
	// error messages.
	return "ERR " + err.Error()
}

// remoteIP extracts the host part of a remote address for rate
// limiting.
func remoteIP(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
