// Package output provides reply formatting for respkv-cli.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davrk/respkv/internal/resp"
)

// FormatReply renders a reply the way redis-cli does: simple strings
// bare, errors and integers tagged, bulk strings quoted, nulls as
// (nil), arrays numbered.
func FormatReply(v resp.Value) string {
	switch v.Type() {
	case resp.TypeSimpleString:
		return v.Str()
	case resp.TypeError:
		return "(error) " + v.Str()
	case resp.TypeInteger:
		return "(integer) " + strconv.FormatInt(v.Int(), 10)
	case resp.TypeBulkString:
		if v.IsNull() {
			return "(nil)"
		}
		return strconv.Quote(string(v.Bytes()))
	case resp.TypeArray:
		if v.IsNull() {
			return "(nil)"
		}
		elems := v.Elems()
		if len(elems) == 0 {
			return "(empty array)"
		}
		var b strings.Builder
		for i, e := range elems {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%d) %s", i+1, FormatReply(e))
		}
		return b.String()
	default:
		return v.String()
	}
}
