package resp

import (
	"bytes"
	"fmt"
	"strconv"
)

// Type identifies the RESP shape of a Value. The constants match the
// wire type tag bytes.
type Type byte

const (
	TypeSimpleString Type = '+'
	TypeError        Type = '-'
	TypeInteger      Type = ':'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
)

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simple-string"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk-string"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// Value is one RESP2 protocol value.
//
// Bulk strings and arrays carry an explicit null state: a null bulk
// encodes as "$-1\r\n" and a null array as "*-1\r\n". The zero Value is
// not meaningful; use the constructors.
type Value struct {
	typ   Type
	str   string
	num   int64
	bulk  []byte
	elems []Value
	null  bool
}

// SimpleString returns a "+" status value. The text must not contain
// CR or LF.
func SimpleString(s string) Value {
	return Value{typ: TypeSimpleString, str: s}
}

// Error returns a "-" error report value.
func Error(s string) Value {
	return Value{typ: TypeError, str: s}
}

// Errorf returns a "-" error report value built from a format string.
func Errorf(format string, args ...any) Value {
	return Value{typ: TypeError, str: fmt.Sprintf(format, args...)}
}

// Integer returns a ":" integer value.
func Integer(n int64) Value {
	return Value{typ: TypeInteger, num: n}
}

// Bulk returns a "$" bulk string value holding b. A nil slice produces
// the null bulk, matching the convention that absent values travel as
// "$-1".
func Bulk(b []byte) Value {
	if b == nil {
		return NullBulk()
	}
	return Value{typ: TypeBulkString, bulk: b}
}

// BulkString returns a non-null bulk string value holding s.
func BulkString(s string) Value {
	return Value{typ: TypeBulkString, bulk: []byte(s)}
}

// NullBulk returns the null bulk string ("$-1").
func NullBulk() Value {
	return Value{typ: TypeBulkString, null: true}
}

// Array returns a "*" array value of the given elements. Array()
// produces the empty array ("*0"), not the null array.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{typ: TypeArray, elems: elems}
}

// NullArray returns the null array ("*-1").
func NullArray() Value {
	return Value{typ: TypeArray, null: true}
}

// Type returns the RESP shape of v.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is a null bulk string or null array.
func (v Value) IsNull() bool { return v.null }

// Str returns the text of a simple string or error value.
func (v Value) Str() string { return v.str }

// Int returns the payload of an integer value.
func (v Value) Int() int64 { return v.num }

// Bytes returns the payload of a bulk string value, nil if null.
func (v Value) Bytes() []byte { return v.bulk }

// Elems returns the elements of an array value, nil if null.
func (v Value) Elems() []Value { return v.elems }

// Equal reports whether two values are identical in shape, nullness
// and payload. Array comparison is recursive.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ || v.null != o.null {
		return false
	}
	switch v.typ {
	case TypeSimpleString, TypeError:
		return v.str == o.str
	case TypeInteger:
		return v.num == o.num
	case TypeBulkString:
		return v.null || bytes.Equal(v.bulk, o.bulk)
	case TypeArray:
		if v.null {
			return true
		}
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v for logs and test failure messages, not for the wire.
func (v Value) String() string {
	switch v.typ {
	case TypeSimpleString:
		return "+" + v.str
	case TypeError:
		return "-" + v.str
	case TypeInteger:
		return ":" + strconv.FormatInt(v.num, 10)
	case TypeBulkString:
		if v.null {
			return "$(nil)"
		}
		return "$" + strconv.Quote(string(v.bulk))
	case TypeArray:
		if v.null {
			return "*(nil)"
		}
		var b bytes.Buffer
		b.WriteByte('*')
		b.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	default:
		return v.typ.String()
	}
}
