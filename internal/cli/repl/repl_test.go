package repl

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davrk/respkv/internal/resp"
)

// fakeExec records commands and serves canned replies.
type fakeExec struct {
	calls [][]string
	reply resp.Value
	err   error
}

func (f *fakeExec) Do(args ...string) (resp.Value, error) {
	f.calls = append(f.calls, args)
	return f.reply, f.err
}

func newTestREPL(t *testing.T, exec Executor, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	r := New(exec)
	r.input = strings.NewReader(input)
	r.output = out
	r.history.file = filepath.Join(t.TempDir(), "history")
	return r, out
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{"simple", "GET foo", []string{"GET", "foo"}, false},
		{"extra spaces", "  SET   a  b ", []string{"SET", "a", "b"}, false},
		{"quoted value", `SET key "two words"`, []string{"SET", "key", "two words"}, false},
		{"empty quoted", `SET key ""`, []string{"SET", "key", ""}, false},
		{"tab separated", "GET\tfoo", []string{"GET", "foo"}, false},
		{"unterminated quote", `SET key "oops`, nil, true},
		{"empty", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitArgs(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("splitArgs(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitArgs(%q) = %v, want %v", tt.line, got, tt.want)
					break
				}
			}
		})
	}
}

func TestREPL_Run(t *testing.T) {
	exec := &fakeExec{reply: resp.SimpleString("PONG")}
	r, out := newTestREPL(t, exec, "PING\nexit\n")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("executed %d commands, want 1", len(exec.calls))
	}
	if exec.calls[0][0] != "PING" {
		t.Errorf("executed %v, want PING", exec.calls[0])
	}
	if !strings.Contains(out.String(), "PONG") {
		t.Errorf("output %q does not contain reply", out.String())
	}
}

func TestREPL_Run_EOF(t *testing.T) {
	exec := &fakeExec{reply: resp.SimpleString("OK")}
	r, _ := newTestREPL(t, exec, "")

	if err := r.Run(); err != nil {
		t.Errorf("Run() error = %v, want nil on EOF", err)
	}
}

func TestREPL_Run_SkipsBlankLines(t *testing.T) {
	exec := &fakeExec{reply: resp.SimpleString("OK")}
	r, _ := newTestREPL(t, exec, "\n   \nquit\n")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("executed %d commands, want 0", len(exec.calls))
	}
}

func TestREPL_Run_ExecutorError(t *testing.T) {
	exec := &fakeExec{err: errors.New("connection lost")}
	r, out := newTestREPL(t, exec, "GET foo\nexit\n")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "connection lost") {
		t.Errorf("output %q does not report the executor error", out.String())
	}
}
