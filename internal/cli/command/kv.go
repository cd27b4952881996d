// Package command provides CLI command definitions for respkv-cli.
package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/davrk/respkv/internal/cli/output"
	"github.com/davrk/respkv/internal/cli/repl"
)

// PingCommand returns the ping subcommand.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Check server liveness",
		ArgsUsage: "[MESSAGE]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return errors.New("ping takes at most one argument")
			}
			args := append([]string{"PING"}, c.Args().Slice()...)
			return runOnce(c, args...)
		},
	}
}

// GetCommand returns the get subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("get takes exactly one key")
			}
			return runOnce(c, "GET", c.Args().First())
		},
	}
}

// SetCommand returns the set subcommand.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value",
		ArgsUsage: "KEY VALUE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("set takes a key and a value")
			}
			return runOnce(c, "SET", c.Args().Get(0), c.Args().Get(1))
		},
	}
}

// DelCommand returns the del subcommand.
func DelCommand() *cli.Command {
	return &cli.Command{
		Name:      "del",
		Usage:     "Delete keys",
		ArgsUsage: "KEY [KEY...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return errors.New("del takes at least one key")
			}
			args := append([]string{"DEL"}, c.Args().Slice()...)
			return runOnce(c, args...)
		},
	}
}

// ExistsCommand returns the exists subcommand.
func ExistsCommand() *cli.Command {
	return &cli.Command{
		Name:      "exists",
		Usage:     "Count how many of the given keys exist",
		ArgsUsage: "KEY [KEY...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return errors.New("exists takes at least one key")
			}
			args := append([]string{"EXISTS"}, c.Args().Slice()...)
			return runOnce(c, args...)
		},
	}
}

// ReplCommand returns the interactive REPL subcommand.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"i"},
		Usage:   "Interactive mode",
		Action: func(c *cli.Context) error {
			cl, err := dial(c)
			if err != nil {
				return err
			}
			defer cl.Close()
			return repl.New(cl).Run()
		},
	}
}

// runOnce dials, sends one command, and prints the formatted reply.
func runOnce(c *cli.Context, args ...string) error {
	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	v, err := cl.Do(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, output.FormatReply(v))
	return nil
}
