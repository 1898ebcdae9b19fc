package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/omfj/appwash-cli/internal/command"
	"github.com/omfj/appwash-cli/pkg/env"
)

const (
	helpUsageWidth = 28
	helpTextWidth  = 52
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

// PrintBanner writes the greeting shown on start and restart.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, bannerStyle.Render("Welcome to AppWash CLI!"))
	fmt.Fprintln(w, "Type 'help' for commands.")
	fmt.Fprintln(w)
}

func (a *App) help(_ context.Context, inv *command.Invocation) error {
	if showEnv, _ := inv.Flags.GetBool("env"); showEnv {
		printEnv(inv)
		return nil
	}

	inv.Println("Available commands:")
	for _, cmd := range a.dispatcher.Registry().Commands() {
		usage := command.Usage(cmd)
		if len(cmd.Aliases) > 1 {
			usage += " (" + strings.Join(cmd.Aliases[1:], ", ") + ")"
		}
		lines := strings.SplitN(wordwrap.String(cmd.Help, helpTextWidth), "\n", 2)
		inv.Printf("  %-*s %s\n", helpUsageWidth, usage, lines[0])
		if len(lines) > 1 {
			inv.Println(indent.String(lines[1], helpUsageWidth+3))
		}
	}
	return nil
}

func printEnv(inv *command.Invocation) {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Variable", "Default", "Description"})
	for _, v := range env.VarDescriptions() {
		if v.Component == env.ComponentTesting {
			continue
		}
		def := v.DefaultValue
		if def == "" {
			def = "(none)"
		}
		tw.AppendRow(table.Row{v.Name, def, v.Description})
	}
	inv.Println(tw.Render())
}

func (a *App) clear(_ context.Context, _ *command.Invocation) error {
	if err := a.console.ClearScreen(); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}
	return nil
}

// restart drops all in-memory state, as if the program had been started
// again.
func (a *App) restart(_ context.Context, inv *command.Invocation) error {
	a.session.Reset()
	a.runID = uuid.NewString()
	if err := a.console.ClearScreen(); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}
	PrintBanner(inv.Out)
	return nil
}

func exit(context.Context, *command.Invocation) error {
	return command.ErrExit
}
