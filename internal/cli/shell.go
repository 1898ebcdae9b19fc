package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"go.uber.org/zap"

	"github.com/omfj/appwash-cli/internal/command"
	"github.com/omfj/appwash-cli/internal/config"
	"github.com/omfj/appwash-cli/internal/logger"
	"github.com/omfj/appwash-cli/internal/telemetry"
	"github.com/omfj/appwash-cli/pkg/client"
)

const prompt = ">>> "

// NewShell returns an ishell without its built-in commands, so that every
// line reaches the dispatcher.
func NewShell() *ishell.Shell {
	shell := ishell.New()
	for _, name := range []string{"exit", "help", "clear"} {
		shell.DeleteCmd(name)
	}
	shell.SetPrompt(config.BoldGreen(prompt))
	return shell
}

// Serve feeds every line typed into shell to app until an exit command,
// a second Ctrl-C or end of input.
func Serve(ctx context.Context, shell *ishell.Shell, app *App) {
	shell.NotFound(func(c *ishell.Context) {
		if app.Dispatch(ctx, strings.Join(c.RawArgs, " ")) == command.Exit {
			c.Stop()
			return
		}
		c.Println()
	})
	shell.Interrupt(func(c *ishell.Context, count int, _ string) {
		if count >= 2 {
			c.Println(command.Farewell)
			c.Stop()
			return
		}
		c.Println("Press Ctrl-C once more to exit.")
	})
	shell.EOF(func(c *ishell.Context) {
		c.Println(command.Farewell)
		c.Stop()
	})

	PrintBanner(os.Stdout)
	shell.Run()
	shell.Close()
}

// Run starts the interactive shell with cfg. It only fails before the shell
// starts.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	defer logger.Sync()

	shutdown, err := telemetry.InitTracing(ctx)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
		shutdown = func() {}
	}
	defer shutdown()

	clients := client.New(client.Config{
		BaseURL:  cfg.APIURL,
		Language: cfg.Language,
		Timeout:  cfg.Timeout,
		Logger:   logger.Logr(),
	})

	shell := NewShell()
	app, err := NewApp(cfg, clients, NewShellConsole(shell), os.Stdout, WithProgress(NewProgress()))
	if err != nil {
		log.Error("refusing to start shell", zap.Error(err))
		return fmt.Errorf("configuration error: %w", err)
	}

	log.Info("starting shell",
		zap.String("run_id", app.RunID()),
		zap.String("api_url", cfg.APIURL),
		zap.String("location_id", cfg.LocationID),
	)
	Serve(ctx, shell, app)
	return nil
}
