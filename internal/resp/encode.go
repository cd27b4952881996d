package resp

import "strconv"

var crlf = []byte("\r\n")

// Encode returns the unique wire encoding of v. Encoding is total:
// every well-formed Value encodes without error.
func (v Value) Encode() []byte {
	return v.Append(nil)
}

// Append appends the wire encoding of v to dst and returns the
// extended slice. It follows the append convention so callers can
// reuse one buffer across pipelined replies.
func (v Value) Append(dst []byte) []byte {
	switch v.typ {
	case TypeSimpleString:
		dst = append(dst, '+')
		dst = append(dst, v.str...)
		return append(dst, crlf...)
	case TypeError:
		dst = append(dst, '-')
		dst = append(dst, v.str...)
		return append(dst, crlf...)
	case TypeInteger:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, v.num, 10)
		return append(dst, crlf...)
	case TypeBulkString:
		if v.null {
			return append(dst, "$-1\r\n"...)
		}
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(v.bulk)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.bulk...)
		return append(dst, crlf...)
	case TypeArray:
		if v.null {
			return append(dst, "*-1\r\n"...)
		}
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v.elems)), 10)
		dst = append(dst, crlf...)
		for _, e := range v.elems {
			dst = e.Append(dst)
		}
		return dst
	default:
		// Unreachable for values built through the constructors.
		return dst
	}
}
