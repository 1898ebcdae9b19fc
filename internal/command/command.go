// Package command maps shell input lines to registered commands.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
)

var (
	// ErrExit is returned by a handler to end the shell.
	ErrExit = errors.New("exit requested")
	// ErrConfiguration marks a broken command table. It is only produced
	// while building a Registry.
	ErrConfiguration = errors.New("invalid command configuration")
)

// Precondition is checked by the dispatcher before a handler runs.
type Precondition int

const (
	None Precondition = iota
	RequiresSession
)

// Handler runs a command. Handlers render their own output to inv.Out and
// return an error only for failures they did not render.
type Handler func(ctx context.Context, inv *Invocation) error

type Command struct {
	// Aliases are matched exactly. The first one is the command's name.
	Aliases []string
	// Usage is shown by help, e.g. "login [email] [password]".
	Usage string
	Help  string
	// Arity is the number of positional arguments the handler takes.
	// Fewer is not an error; the handler prompts for what is missing.
	Arity int
	// Flags declares the command's flags. Undeclared flags are rejected.
	Flags        func(fs *pflag.FlagSet)
	Precondition Precondition
	Handler      Handler
}

func (c *Command) Name() string {
	if len(c.Aliases) == 0 {
		return ""
	}
	return c.Aliases[0]
}

// Invocation is one dispatched command line.
type Invocation struct {
	Command *Command
	// Alias is the token the user typed.
	Alias string
	// Args are the positional arguments, flags removed.
	Args  []string
	Flags *pflag.FlagSet
	Out   io.Writer
}

// Missing reports whether fewer positional arguments than the command's
// arity were given.
func (i *Invocation) Missing() bool {
	return len(i.Args) < i.Command.Arity
}

// Arg returns the n-th positional argument or "".
func (i *Invocation) Arg(n int) string {
	if n < 0 || n >= len(i.Args) {
		return ""
	}
	return i.Args[n]
}

func (i *Invocation) Printf(format string, a ...any) {
	fmt.Fprintf(i.Out, format, a...)
}

func (i *Invocation) Println(a ...any) {
	fmt.Fprintln(i.Out, a...)
}

// Registry owns the alias to command mapping. Aliases are unique across the
// whole registry.
type Registry struct {
	byAlias map[string]*Command
	ordered []*Command
}

// NewRegistry registers cmds in order and reports every configuration
// problem at once. On error no registry is returned.
func NewRegistry(cmds ...*Command) (*Registry, error) {
	r := &Registry{byAlias: make(map[string]*Command)}

	var result *multierror.Error
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds cmd. Nothing is registered when any of its aliases is
// invalid or taken.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Handler == nil {
		return fmt.Errorf("%w: command %q has no handler", ErrConfiguration, cmdName(cmd))
	}
	if len(cmd.Aliases) == 0 {
		return fmt.Errorf("%w: command has no aliases", ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(cmd.Aliases))
	for _, alias := range cmd.Aliases {
		switch {
		case alias == "":
			return fmt.Errorf("%w: command %q has an empty alias", ErrConfiguration, cmd.Name())
		case strings.ContainsAny(alias, " \t\r\n"):
			return fmt.Errorf("%w: alias %q of %q contains whitespace", ErrConfiguration, alias, cmd.Name())
		case strings.HasPrefix(alias, "-"):
			return fmt.Errorf("%w: alias %q of %q looks like a flag", ErrConfiguration, alias, cmd.Name())
		}
		if _, dup := seen[alias]; dup {
			return fmt.Errorf("%w: alias %q listed twice by %q", ErrConfiguration, alias, cmd.Name())
		}
		seen[alias] = struct{}{}
		if owner, taken := r.byAlias[alias]; taken {
			return fmt.Errorf("%w: alias %q of %q is already registered by %q", ErrConfiguration, alias, cmd.Name(), owner.Name())
		}
	}

	for _, alias := range cmd.Aliases {
		r.byAlias[alias] = cmd
	}
	r.ordered = append(r.ordered, cmd)
	return nil
}

func (r *Registry) Lookup(alias string) (*Command, bool) {
	cmd, ok := r.byAlias[alias]
	return cmd, ok
}

// Commands returns the commands in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.ordered...)
}

func cmdName(cmd *Command) string {
	if cmd == nil {
		return ""
	}
	return cmd.Name()
}
