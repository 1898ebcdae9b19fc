package cli

import (
	"os"
	"time"

	"github.com/abiosoft/ishell/v2"
	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Console is the interactive I/O handlers may ask for.
type Console interface {
	ReadLine(prompt string) (string, error)
	// ReadPassword reads without echo.
	ReadPassword(prompt string) (string, error)
	ClearScreen() error
}

type shellConsole struct {
	shell *ishell.Shell
}

// NewShellConsole reads from the running shell so prompts share its line
// editor and history.
func NewShellConsole(shell *ishell.Shell) Console {
	return &shellConsole{shell: shell}
}

func (c *shellConsole) ReadLine(prompt string) (string, error) {
	c.shell.ShowPrompt(false)
	defer c.shell.ShowPrompt(true)
	c.shell.Print(prompt)
	return c.shell.ReadLineErr()
}

func (c *shellConsole) ReadPassword(prompt string) (string, error) {
	c.shell.ShowPrompt(false)
	defer c.shell.ShowPrompt(true)
	c.shell.Print(prompt)
	return c.shell.ReadPasswordErr()
}

func (c *shellConsole) ClearScreen() error {
	return c.shell.ClearScreen()
}

// Progress is shown while a handler waits on the network.
type Progress interface {
	Start(msg string)
	Stop()
}

type noProgress struct{}

func (noProgress) Start(string) {}
func (noProgress) Stop()        {}

type spinnerProgress struct {
	s *spinner.Spinner
}

// NewProgress returns a spinner on stdout, or a no-op when stdout is not a
// terminal.
func NewProgress() Progress {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return noProgress{}
	}
	return &spinnerProgress{
		s: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stdout)),
	}
}

func (p *spinnerProgress) Start(msg string) {
	p.s.Suffix = " " + msg
	p.s.Start()
}

func (p *spinnerProgress) Stop() {
	p.s.Stop()
}
