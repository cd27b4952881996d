package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// Protocol limits to prevent DoS attacks. A client declaring a larger
// array or bulk length is cut off before the payload is read.
const (
	// MaxArrayLen limits the number of elements in a RESP array.
	MaxArrayLen = 1024

	// MaxBulkLen limits the size of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxLineLen limits a simple string, error, or integer line (4KB).
	MaxLineLen = 4 * 1024

	// maxLengthLine bounds the digits of a bulk or array length
	// header. Anything longer cannot be a length within the limits
	// above.
	maxLengthLine = 64
)

// ErrIncomplete marks decode failures that mean the buffer ends before
// one whole value. The caller should read more bytes and retry; every
// other decode error is malformed input and fatal to the stream.
var ErrIncomplete = errors.New("resp: incomplete value")

var (
	// ErrUnexpectedEOF reports an empty input buffer.
	ErrUnexpectedEOF = fmt.Errorf("%w: unexpected end of input", ErrIncomplete)

	// ErrUnterminatedLine reports a line with no CRLF before the end
	// of the buffer.
	ErrUnterminatedLine = fmt.Errorf("%w: unterminated line", ErrIncomplete)

	// ErrLengthMismatch reports a bulk string whose declared length
	// exceeds the payload bytes available.
	ErrLengthMismatch = fmt.Errorf("%w: bulk payload shorter than declared length", ErrIncomplete)

	// ErrInvalidTypeTag reports a leading byte that is not one of the
	// five RESP2 type tags.
	ErrInvalidTypeTag = errors.New("resp: invalid type tag")

	// ErrMalformedInteger reports an integer line that does not parse
	// as base-10 signed.
	ErrMalformedInteger = errors.New("resp: malformed integer")

	// ErrMalformedLength reports a bulk or array length prefix that
	// does not parse, or a negative length other than -1.
	ErrMalformedLength = errors.New("resp: malformed length")

	// ErrMissingTerminator reports a bulk payload not followed by CRLF.
	ErrMissingTerminator = errors.New("resp: missing CRLF after bulk payload")

	// ErrLimitExceeded reports a declared length beyond the protocol
	// limits.
	ErrLimitExceeded = errors.New("resp: protocol limit exceeded")
)

// Decode reads exactly one RESP value from the front of buf and
// returns it together with the untouched remainder. It never reads
// past the bytes belonging to that value, so the remainder can hold
// further pipelined values or the partial prefix of the next one.
//
// Errors wrapping ErrIncomplete mean buf holds a valid prefix of a
// value and more bytes are needed; all other errors mean the stream is
// desynchronized beyond recovery.
func Decode(buf []byte) (Value, []byte, error) {
	if len(buf) == 0 {
		return Value{}, buf, ErrUnexpectedEOF
	}

	switch buf[0] {
	case '+':
		line, rest, err := readLine(buf[1:], MaxLineLen)
		if err != nil {
			return Value{}, buf, err
		}
		return SimpleString(string(line)), rest, nil

	case '-':
		line, rest, err := readLine(buf[1:], MaxLineLen)
		if err != nil {
			return Value{}, buf, err
		}
		return Error(string(line)), rest, nil

	case ':':
		line, rest, err := readLine(buf[1:], MaxLineLen)
		if err != nil {
			return Value{}, buf, err
		}
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return Value{}, buf, fmt.Errorf("%w: %q", ErrMalformedInteger, line)
		}
		return Integer(n), rest, nil

	case '$':
		return decodeBulk(buf)

	case '*':
		return decodeArray(buf)

	default:
		return Value{}, buf, fmt.Errorf("%w: 0x%02x", ErrInvalidTypeTag, buf[0])
	}
}

func decodeBulk(buf []byte) (Value, []byte, error) {
	line, rest, err := readLine(buf[1:], maxLengthLine)
	if err != nil {
		return Value{}, buf, err
	}
	n, err := parseLength(line)
	if err != nil {
		return Value{}, buf, err
	}
	if n == -1 {
		return NullBulk(), rest, nil
	}
	if n > MaxBulkLen {
		return Value{}, buf, fmt.Errorf("%w: bulk length %d exceeds %d", ErrLimitExceeded, n, MaxBulkLen)
	}
	if len(rest) < n+2 {
		return Value{}, buf, ErrLengthMismatch
	}
	if rest[n] != '\r' || rest[n+1] != '\n' {
		return Value{}, buf, ErrMissingTerminator
	}
	payload := make([]byte, n)
	copy(payload, rest[:n])
	return Bulk(payload), rest[n+2:], nil
}

func decodeArray(buf []byte) (Value, []byte, error) {
	line, rest, err := readLine(buf[1:], maxLengthLine)
	if err != nil {
		return Value{}, buf, err
	}
	n, err := parseLength(line)
	if err != nil {
		return Value{}, buf, err
	}
	if n == -1 {
		return NullArray(), rest, nil
	}
	if n > MaxArrayLen {
		return Value{}, buf, fmt.Errorf("%w: array length %d exceeds %d", ErrLimitExceeded, n, MaxArrayLen)
	}

	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		var elem Value
		elem, rest, err = Decode(rest)
		if err != nil {
			// The whole-buffer position is reported, not the
			// element offset: a partial element means the whole
			// array is partial.
			return Value{}, buf, err
		}
		elems = append(elems, elem)
	}
	return Array(elems...), rest, nil
}

// parseLength parses a bulk or array length prefix. -1 is the only
// negative length with a meaning (the null marker).
func parseLength(line []byte) (int, error) {
	n, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLength, line)
	}
	if n < -1 {
		return 0, fmt.Errorf("%w: %d", ErrMalformedLength, n)
	}
	return n, nil
}

// readLine splits b at the first CRLF, returning the line without the
// terminator and the bytes after it. A line longer than limit is a
// protocol violation whether or not its CRLF has arrived yet; without
// the bound, an unterminated line would read as incomplete and let one
// connection grow its buffer forever.
func readLine(b []byte, limit int) (line, rest []byte, err error) {
	idx := bytes.Index(b, crlf)
	if idx < 0 {
		if len(b) > limit {
			return nil, nil, fmt.Errorf("%w: line exceeds %d bytes", ErrLimitExceeded, limit)
		}
		return nil, nil, ErrUnterminatedLine
	}
	if idx > limit {
		return nil, nil, fmt.Errorf("%w: line exceeds %d bytes", ErrLimitExceeded, limit)
	}
	return b[:idx], b[idx+2:], nil
}
