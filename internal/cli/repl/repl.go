// Package repl provides the interactive REPL mode for respkv-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davrk/respkv/internal/cli/output"
	"github.com/davrk/respkv/internal/resp"
)

// Executor runs one command against a server. *client.Client
// satisfies it.
type Executor interface {
	Do(args ...string) (resp.Value, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	exec    Executor
	input   io.Reader
	output  io.Writer
	history *History
}

// New creates a new REPL instance talking to exec.
func New(exec Executor) *REPL {
	return &REPL{
		exec:    exec,
		input:   os.Stdin,
		output:  os.Stdout,
		history: NewHistory(),
	}
}

// Run starts the REPL loop. It returns on EOF or an exit command.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: could not load history: %v\n", err)
	}
	defer r.history.Save()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "respkv> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		r.execute(line)
	}
}

func (r *REPL) execute(line string) {
	args, err := splitArgs(line)
	if err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return
	}
	if len(args) == 0 {
		return
	}

	v, err := r.exec.Do(args...)
	if err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(r.output, output.FormatReply(v))
}

// splitArgs splits a command line on whitespace, honoring double
// quotes so values may contain spaces.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inQuote := false
	started := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
			started = true
		case ch == ' ' || ch == '\t':
			if inQuote {
				cur.WriteByte(ch)
				break
			}
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteByte(ch)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}
