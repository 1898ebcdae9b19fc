package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/omfj/appwash-cli/internal/command"
	"github.com/omfj/appwash-cli/internal/config"
	"github.com/omfj/appwash-cli/internal/logger"
	"github.com/omfj/appwash-cli/internal/session"
	"github.com/omfj/appwash-cli/internal/telemetry"
	"github.com/omfj/appwash-cli/pkg/client"
)

// App owns the state of one shell: the session, the API clients and the
// command table.
type App struct {
	cfg        *config.Config
	clients    *client.ClientSet
	session    *session.Session
	console    Console
	out        io.Writer
	progress   Progress
	dispatcher *command.Dispatcher
	runID      string
	// lastErr is the failure of the command being dispatched, whether the
	// handler returned it or rendered it itself.
	lastErr error
}

type Option func(*App)

// WithProgress shows p while network calls are in flight.
func WithProgress(p Progress) Option {
	return func(a *App) { a.progress = p }
}

// NewApp builds the command table. An error means the table itself is
// broken and the shell must not start.
func NewApp(cfg *config.Config, clients *client.ClientSet, console Console, out io.Writer, opts ...Option) (*App, error) {
	a := &App{
		cfg:      cfg,
		clients:  clients,
		console:  console,
		out:      out,
		progress: noProgress{},
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.session = session.New(&progressAuth{auth: clients.Auth, app: a})

	registry, err := command.NewRegistry(a.commands()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build command table: %w", err)
	}
	a.dispatcher = command.NewDispatcher(registry, a.session, out, command.Observer{
		OnDispatch: func(cmd *command.Command, argc int) {
			logger.LogCommand(a.runID, cmd.Name(), argc)
		},
		OnError: func(cmd *command.Command, err error) {
			a.lastErr = err
			logger.LogCommandError(a.runID, cmd.Name(), err)
		},
	})
	return a, nil
}

// Dispatch runs one line of input. Known commands are traced.
func (a *App) Dispatch(ctx context.Context, line string) command.Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return a.dispatcher.Dispatch(ctx, line)
	}
	cmd, ok := a.dispatcher.Registry().Lookup(fields[0])
	if !ok {
		return a.dispatcher.Dispatch(ctx, line)
	}

	ctx, span := telemetry.StartCommand(ctx, a.runID, cmd.Name())
	a.lastErr = nil
	res := a.dispatcher.Dispatch(ctx, line)
	telemetry.EndCommand(span, a.lastErr)
	return res
}

func (a *App) Session() *session.Session {
	return a.session
}

func (a *App) RunID() string {
	return a.runID
}

// busy runs fn with the progress indicator showing msg.
func (a *App) busy(msg string, fn func() error) error {
	a.progress.Start(msg)
	defer a.progress.Stop()
	return fn()
}

// progressAuth shows the progress indicator during the login exchange only,
// not while the user is typing credentials.
type progressAuth struct {
	auth client.Auth
	app  *App
}

func (p *progressAuth) Login(ctx context.Context, email, password string) (string, error) {
	var token string
	err := p.app.busy("Logging in", func() error {
		var err error
		token, err = p.auth.Login(ctx, email, password)
		return err
	})
	return token, err
}
