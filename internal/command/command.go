// Package command maps decoded RESP requests to validated commands.
//
// A request travels as an array of bulk strings, the first naming the
// command. Parse checks arity and argument shape up front so the
// dispatcher only ever sees well-formed commands.
package command

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/davrk/respkv/internal/resp"
)

// Kind identifies a recognized command.
type Kind int

const (
	Ping Kind = iota
	Get
	Set
	Del
	Exists
	Quit
)

// String returns the canonical (uppercase) command name.
func (k Kind) String() string {
	switch k {
	case Ping:
		return "PING"
	case Get:
		return "GET"
	case Set:
		return "SET"
	case Del:
		return "DEL"
	case Exists:
		return "EXISTS"
	case Quit:
		return "QUIT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is one validated request. Only the fields meaningful for its
// Kind are populated.
type Command struct {
	Kind Kind

	// Arg is PING's optional echo argument; HasArg distinguishes a
	// bare PING from PING with an empty argument.
	Arg    string
	HasArg bool

	// Key and Value carry GET's key and SET's key/value pair.
	Key   string
	Value string

	// Keys carries the one-or-more keys of DEL and EXISTS.
	Keys []string
}

// ErrNotACommand reports a request that is not an array of non-null
// bulk strings with at least one element.
var ErrNotACommand = errors.New("command: expected a non-empty array of bulk strings")

// WrongArityError reports a recognized command with the wrong number
// of arguments.
type WrongArityError struct {
	Name string
}

func (e *WrongArityError) Error() string {
	return "wrong number of arguments for '" + e.Name + "' command"
}

// UnknownCommandError reports a command name this server does not
// implement.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command '" + e.Name + "'"
}

// Parse validates a decoded request value and produces a Command.
// Command names match case-insensitively.
func Parse(v resp.Value) (Command, error) {
	args, err := requestArgs(v)
	if err != nil {
		return Command{}, err
	}

	name := normalizeName(args[0])
	switch name {
	case "PING":
		switch len(args) {
		case 1:
			return Command{Kind: Ping}, nil
		case 2:
			return Command{Kind: Ping, Arg: string(args[1]), HasArg: true}, nil
		default:
			return Command{}, &WrongArityError{Name: name}
		}

	case "GET":
		if len(args) != 2 {
			return Command{}, &WrongArityError{Name: name}
		}
		return Command{Kind: Get, Key: string(args[1])}, nil

	case "SET":
		if len(args) != 3 {
			return Command{}, &WrongArityError{Name: name}
		}
		return Command{Kind: Set, Key: string(args[1]), Value: string(args[2])}, nil

	case "DEL":
		if len(args) < 2 {
			return Command{}, &WrongArityError{Name: name}
		}
		return Command{Kind: Del, Keys: argStrings(args[1:])}, nil

	case "EXISTS":
		if len(args) < 2 {
			return Command{}, &WrongArityError{Name: name}
		}
		return Command{Kind: Exists, Keys: argStrings(args[1:])}, nil

	case "QUIT":
		if len(args) != 1 {
			return Command{}, &WrongArityError{Name: name}
		}
		return Command{Kind: Quit}, nil

	default:
		return Command{}, &UnknownCommandError{Name: name}
	}
}

// requestArgs extracts the bulk-string arguments of a request array.
func requestArgs(v resp.Value) ([][]byte, error) {
	if v.Type() != resp.TypeArray || v.IsNull() {
		return nil, ErrNotACommand
	}
	elems := v.Elems()
	if len(elems) == 0 {
		return nil, ErrNotACommand
	}

	args := make([][]byte, len(elems))
	for i, e := range elems {
		if e.Type() != resp.TypeBulkString || e.IsNull() {
			return nil, ErrNotACommand
		}
		args[i] = e.Bytes()
	}
	return args, nil
}

func argStrings(args [][]byte) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = string(a)
	}
	return out
}

// normalizeName uppercases a command name, skipping the allocation for
// tokens that are already uppercase.
func normalizeName(b []byte) string {
	if bytes.ContainsAny(b, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(string(b))
	}
	return string(b)
}
