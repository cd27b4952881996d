package command

import (
	"errors"
	"testing"

	"github.com/davrk/respkv/internal/resp"
)

func request(args ...string) resp.Value {
	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.BulkString(a)
	}
	return resp.Array(elems...)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Value
		want  Command
	}{
		{"PING bare", request("PING"), Command{Kind: Ping}},
		{"PING with arg", request("PING", "hello"), Command{Kind: Ping, Arg: "hello", HasArg: true}},
		{"PING with empty arg", request("PING", ""), Command{Kind: Ping, Arg: "", HasArg: true}},
		{"GET", request("GET", "foo"), Command{Kind: Get, Key: "foo"}},
		{"SET", request("SET", "foo", "bar"), Command{Kind: Set, Key: "foo", Value: "bar"}},
		{"DEL single", request("DEL", "a"), Command{Kind: Del, Keys: []string{"a"}}},
		{"DEL multiple", request("DEL", "a", "b", "c"), Command{Kind: Del, Keys: []string{"a", "b", "c"}}},
		{"EXISTS", request("EXISTS", "a", "b"), Command{Kind: Exists, Keys: []string{"a", "b"}}},
		{"QUIT", request("QUIT"), Command{Kind: Quit}},

		// Command names are matched case-insensitively.
		{"lowercase ping", request("ping"), Command{Kind: Ping}},
		{"mixed case set", request("Set", "k", "v"), Command{Kind: Set, Key: "k", Value: "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Kind != tt.want.Kind || got.Arg != tt.want.Arg || got.HasArg != tt.want.HasArg ||
				got.Key != tt.want.Key || got.Value != tt.want.Value {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
			if len(got.Keys) != len(tt.want.Keys) {
				t.Fatalf("Keys = %v, want %v", got.Keys, tt.want.Keys)
			}
			for i := range got.Keys {
				if got.Keys[i] != tt.want.Keys[i] {
					t.Errorf("Keys[%d] = %q, want %q", i, got.Keys[i], tt.want.Keys[i])
				}
			}
		})
	}
}

func TestParse_WrongArity(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Value
	}{
		{"PING with two args", request("PING", "a", "b")},
		{"GET without key", request("GET")},
		{"GET with extra arg", request("GET", "a", "b")},
		{"SET without value", request("SET", "a")},
		{"SET with extra arg", request("SET", "a", "b", "c")},
		{"DEL without keys", request("DEL")},
		{"EXISTS without keys", request("EXISTS")},
		{"QUIT with arg", request("QUIT", "now")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var arityErr *WrongArityError
			if !errors.As(err, &arityErr) {
				t.Fatalf("error = %v, want WrongArityError", err)
			}
		})
	}
}

func TestParse_UnknownCommand(t *testing.T) {
	_, err := Parse(request("FLUSHALL"))

	var unknownErr *UnknownCommandError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %v, want UnknownCommandError", err)
	}
	if unknownErr.Name != "FLUSHALL" {
		t.Errorf("Name = %q, want %q", unknownErr.Name, "FLUSHALL")
	}
}

func TestParse_NotACommand(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Value
	}{
		{"simple string", resp.SimpleString("PING")},
		{"integer", resp.Integer(1)},
		{"bare bulk", resp.BulkString("PING")},
		{"null array", resp.NullArray()},
		{"empty array", resp.Array()},
		{"array with non-bulk element", resp.Array(resp.BulkString("GET"), resp.Integer(1))},
		{"array with null bulk element", resp.Array(resp.BulkString("GET"), resp.NullBulk())},
		{"nested array argument", resp.Array(resp.Array(resp.BulkString("GET")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, ErrNotACommand) {
				t.Fatalf("error = %v, want ErrNotACommand", err)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Ping, "PING"},
		{Get, "GET"},
		{Set, "SET"},
		{Del, "DEL"},
		{Exists, "EXISTS"},
		{Quit, "QUIT"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind.String() = %q, want %q", got, tt.want)
		}
	}
}
