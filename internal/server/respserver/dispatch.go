package respserver

import (
	"github.com/davrk/respkv/internal/command"
	"github.com/davrk/respkv/internal/resp"
	"github.com/davrk/respkv/internal/store"
)

// Execute runs one validated command against the store and returns
// the reply value. It is pure with respect to the wire format: no
// bytes in, no bytes out, and no state beyond the store itself.
func Execute(cmd command.Command, st *store.Store) resp.Value {
	switch cmd.Kind {
	case command.Ping:
		if cmd.HasArg {
			// The argument echoes back as a simple string rather
			// than the bulk reply real Redis sends.
			return resp.SimpleString(cmd.Arg)
		}
		return resp.SimpleString("PONG")

	case command.Get:
		if v, ok := st.Get(cmd.Key); ok {
			return resp.BulkString(v)
		}
		return resp.NullBulk()

	case command.Set:
		st.Set(cmd.Key, cmd.Value)
		return resp.SimpleString("OK")

	case command.Del:
		deleted := 0
		for _, k := range cmd.Keys {
			if st.Delete(k) {
				deleted++
			}
		}
		return resp.Integer(int64(deleted))

	case command.Exists:
		found := 0
		for _, k := range cmd.Keys {
			if st.Has(k) {
				found++
			}
		}
		return resp.Integer(int64(found))

	case command.Quit:
		// The connection handler closes the stream after this reply.
		return resp.SimpleString("OK")

	default:
		return resp.Error("ERR unhandled command '" + cmd.Kind.String() + "'")
	}
}
