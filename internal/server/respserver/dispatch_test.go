package respserver

import (
	"bytes"
	"testing"

	"github.com/davrk/respkv/internal/command"
	"github.com/davrk/respkv/internal/resp"
	"github.com/davrk/respkv/internal/store"
)

func mustParse(t *testing.T, args ...string) command.Command {
	t.Helper()
	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.BulkString(a)
	}
	cmd, err := command.Parse(resp.Array(elems...))
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return cmd
}

func TestExecute_Ping(t *testing.T) {
	st := store.New()

	got := Execute(mustParse(t, "PING"), st)
	if want := resp.SimpleString("PONG"); !got.Equal(want) {
		t.Errorf("PING reply = %v, want %v", got, want)
	}

	got = Execute(mustParse(t, "PING", "hello"), st)
	if want := resp.SimpleString("hello"); !got.Equal(want) {
		t.Errorf("PING hello reply = %v, want %v", got, want)
	}
}

func TestExecute_SetGet(t *testing.T) {
	st := store.New()

	got := Execute(mustParse(t, "SET", "foo", "bar"), st)
	if want := resp.SimpleString("OK"); !got.Equal(want) {
		t.Errorf("SET reply = %v, want %v", got, want)
	}

	got = Execute(mustParse(t, "GET", "foo"), st)
	if want := resp.BulkString("bar"); !got.Equal(want) {
		t.Errorf("GET reply = %v, want %v", got, want)
	}
	if wire := got.Encode(); !bytes.Equal(wire, []byte("$3\r\nbar\r\n")) {
		t.Errorf("GET wire = %q, want %q", wire, "$3\r\nbar\r\n")
	}
}

func TestExecute_GetMissing(t *testing.T) {
	st := store.New()

	got := Execute(mustParse(t, "GET", "absent"), st)
	if !got.IsNull() {
		t.Errorf("GET absent reply = %v, want null bulk", got)
	}
	if wire := got.Encode(); !bytes.Equal(wire, []byte("$-1\r\n")) {
		t.Errorf("GET absent wire = %q, want %q", wire, "$-1\r\n")
	}
}

func TestExecute_SetOverwrite(t *testing.T) {
	st := store.New()

	Execute(mustParse(t, "SET", "k", "one"), st)
	Execute(mustParse(t, "SET", "k", "two"), st)

	got := Execute(mustParse(t, "GET", "k"), st)
	if want := resp.BulkString("two"); !got.Equal(want) {
		t.Errorf("GET after overwrite = %v, want %v", got, want)
	}
}

func TestExecute_EmptyValue(t *testing.T) {
	st := store.New()

	Execute(mustParse(t, "SET", "empty", ""), st)

	got := Execute(mustParse(t, "GET", "empty"), st)
	if got.IsNull() {
		t.Fatal("GET of empty value returned null, want empty bulk")
	}
	if wire := got.Encode(); !bytes.Equal(wire, []byte("$0\r\n\r\n")) {
		t.Errorf("empty value wire = %q, want %q", wire, "$0\r\n\r\n")
	}
}

func TestExecute_Del(t *testing.T) {
	st := store.New()
	st.Set("a", "1")
	st.Set("b", "2")

	got := Execute(mustParse(t, "DEL", "a", "b", "c"), st)
	if want := resp.Integer(2); !got.Equal(want) {
		t.Errorf("DEL reply = %v, want %v", got, want)
	}
	if _, ok := st.Get("a"); ok {
		t.Error("key a still present after DEL")
	}
}

func TestExecute_Exists(t *testing.T) {
	st := store.New()
	st.Set("a", "1")

	got := Execute(mustParse(t, "EXISTS", "a", "a", "missing"), st)
	if want := resp.Integer(2); !got.Equal(want) {
		t.Errorf("EXISTS reply = %v, want %v", got, want)
	}
}

func TestExecute_Quit(t *testing.T) {
	st := store.New()

	got := Execute(mustParse(t, "QUIT"), st)
	if want := resp.SimpleString("OK"); !got.Equal(want) {
		t.Errorf("QUIT reply = %v, want %v", got, want)
	}
}

func TestExecute_BinaryValues(t *testing.T) {
	st := store.New()
	val := string([]byte{0x00, 0xff, '\r', '\n', 0x7f})

	Execute(mustParse(t, "SET", "bin", val), st)

	got := Execute(mustParse(t, "GET", "bin"), st)
	if want := resp.BulkString(val); !got.Equal(want) {
		t.Errorf("binary round trip = %v, want %v", got, want)
	}
}
