package cli

import (
	"github.com/spf13/pflag"

	"github.com/omfj/appwash-cli/internal/command"
)

const defaultHistoryLimit = 10

// commands is the shell's command table. "stop" stops a machine; it is not
// an exit alias.
func (a *App) commands() []*command.Command {
	return []*command.Command{
		{
			Aliases: []string{"list", "ls"},
			Usage:   "list [--all]",
			Help:    "List the machines at your location and whether they are free.",
			Flags: func(fs *pflag.FlagSet) {
				fs.Bool("all", false, "include every service type, not only the configured one")
			},
			Precondition: command.RequiresSession,
			Handler:      a.listMachines,
		},
		{
			Aliases: []string{"login"},
			Usage:   "login [email] [password]",
			Help:    "Log in to AppWash. Missing arguments are prompted for.",
			Arity:   2,
			Handler: a.login,
		},
		{
			Aliases: []string{"logout"},
			Usage:   "logout",
			Help:    "Forget the current login.",
			Handler: a.logout,
		},
		{
			Aliases: []string{"whoami"},
			Usage:   "whoami [--secrets]",
			Help:    "Print your account. Add --secrets to include the password and token.",
			Flags: func(fs *pflag.FlagSet) {
				fs.Bool("secrets", false, "show the password and token")
			},
			Precondition: command.RequiresSession,
			Handler:      a.whoami,
		},
		{
			Aliases:      []string{"reserve", "re"},
			Usage:        "reserve [machine]",
			Help:         "Start a session on a machine.",
			Arity:        1,
			Precondition: command.RequiresSession,
			Handler:      a.reserveMachine,
		},
		{
			Aliases:      []string{"stop", "s"},
			Usage:        "stop [machine]",
			Help:         "Stop your running session on a machine.",
			Arity:        1,
			Precondition: command.RequiresSession,
			Handler:      a.stopMachine,
		},
		{
			Aliases:      []string{"balance", "bal"},
			Usage:        "balance",
			Help:         "Show your prepaid balance.",
			Precondition: command.RequiresSession,
			Handler:      a.balance,
		},
		{
			Aliases: []string{"history", "h"},
			Usage:   "history [--limit N]",
			Help:    "Show your latest purchases and top-ups, newest first.",
			Flags: func(fs *pflag.FlagSet) {
				fs.Int("limit", defaultHistoryLimit, "number of entries to show, 0 for all")
			},
			Precondition: command.RequiresSession,
			Handler:      a.history,
		},
		{
			Aliases: []string{"help"},
			Usage:   "help [--env]",
			Help:    "Print this help. Add --env to list the environment variables appwash reads.",
			Flags: func(fs *pflag.FlagSet) {
				fs.Bool("env", false, "list environment variables")
			},
			Handler: a.help,
		},
		{
			Aliases: []string{"clear"},
			Usage:   "clear",
			Help:    "Clear the screen.",
			Handler: a.clear,
		},
		{
			Aliases: []string{"restart", "r"},
			Usage:   "restart",
			Help:    "Start over with a fresh, logged out session.",
			Handler: a.restart,
		},
		{
			Aliases: []string{"exit", "quit", "q", "e"},
			Usage:   "exit",
			Help:    "Leave appwash.",
			Handler: exit,
		},
	}
}
