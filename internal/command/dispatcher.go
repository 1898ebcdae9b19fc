package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

const (
	NoticeNotLoggedIn = "You are not logged in."
	Farewell          = "Bye bye!"
)

// SessionState is the part of the session the dispatcher checks.
type SessionState interface {
	Authenticated() bool
}

// Result tells the read loop whether to keep going.
type Result int

const (
	Continue Result = iota
	Exit
)

// Observer is told about every dispatched command and every handler error.
// Both funcs are optional.
type Observer struct {
	OnDispatch func(cmd *Command, argc int)
	OnError    func(cmd *Command, err error)
}

type Dispatcher struct {
	registry *Registry
	session  SessionState
	out      io.Writer
	observer Observer
}

func NewDispatcher(registry *Registry, session SessionState, out io.Writer, observer Observer) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		session:  session,
		out:      out,
		observer: observer,
	}
}

func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch runs one input line. Unknown commands, missing logins and bad
// flags are reported as notices and never stop the loop.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) Result {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Continue
	}
	alias, rest := tokens[0], tokens[1:]

	cmd, ok := d.registry.Lookup(alias)
	if !ok {
		fmt.Fprintf(d.out, "Unknown command: %s. Type 'help' for commands.\n", alias)
		return Continue
	}

	if cmd.Precondition == RequiresSession && !d.session.Authenticated() {
		fmt.Fprintln(d.out, NoticeNotLoggedIn)
		return Continue
	}

	// Commands without declared flags take every token verbatim, so free
	// text such as a password may start with "-".
	flags := pflag.NewFlagSet(alias, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	args := rest
	if cmd.Flags != nil {
		cmd.Flags(flags)
		if err := flags.Parse(rest); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				fmt.Fprintf(d.out, "Usage: %s\n", Usage(cmd))
				fmt.Fprint(d.out, flags.FlagUsages())
				return Continue
			}
			// pflag errors quote the offending token, which may be a secret.
			fmt.Fprintf(d.out, "Failed to parse flags. Type '%s --help' for usage.\n", alias)
			return Continue
		}
		args = flags.Args()
	}

	inv := &Invocation{
		Command: cmd,
		Alias:   alias,
		Args:    args,
		Flags:   flags,
		Out:     d.out,
	}
	if d.observer.OnDispatch != nil {
		d.observer.OnDispatch(cmd, len(inv.Args))
	}

	err := cmd.Handler(ctx, inv)
	switch {
	case err == nil:
		return Continue
	case errors.Is(err, ErrExit):
		fmt.Fprintln(d.out, Farewell)
		return Exit
	default:
		if d.observer.OnError != nil {
			d.observer.OnError(cmd, err)
		}
		fmt.Fprintf(d.out, "Error: %v\n", err)
		return Continue
	}
}

// Usage returns the command's usage line, falling back to its name.
func Usage(cmd *Command) string {
	if cmd.Usage != "" {
		return cmd.Usage
	}
	return cmd.Name()
}
