package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abiosoft/readline"

	"github.com/omfj/appwash-cli/internal/command"
	"github.com/omfj/appwash-cli/internal/config"
	"github.com/omfj/appwash-cli/internal/session"
	"github.com/omfj/appwash-cli/pkg/client"
)

func (a *App) login(ctx context.Context, inv *command.Invocation) error {
	req := session.LoginRequest{
		Confirm: func() (bool, error) {
			inv.Println("You are already logged in.")
			answer, err := a.console.ReadLine("Do you want to re-login? (y/N): ")
			if err != nil {
				return false, err
			}
			return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
		},
	}
	if inv.Missing() {
		req.Prompt = func() (session.Credentials, error) {
			return a.promptCredentials(inv.Arg(0))
		}
	} else {
		req.Credentials = &session.Credentials{Email: inv.Arg(0), Password: inv.Arg(1)}
	}

	outcome, err := a.session.Login(ctx, req)
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		inv.Println("Login cancelled.")
		return nil
	case err != nil:
		a.printRemoteError(inv, "log in", err)
		return nil
	case outcome == session.LoginDeclined:
		inv.Println("Keeping the current login.")
		return nil
	}

	inv.Println("Login successful.")
	return nil
}

// promptCredentials asks for whatever the login line did not include.
func (a *App) promptCredentials(email string) (session.Credentials, error) {
	if email == "" {
		var err error
		email, err = a.console.ReadLine("Email: ")
		if err != nil {
			return session.Credentials{}, err
		}
	}
	password, err := a.console.ReadPassword("Password: ")
	if err != nil {
		return session.Credentials{}, err
	}
	return session.Credentials{Email: strings.TrimSpace(email), Password: password}, nil
}

func (a *App) logout(_ context.Context, inv *command.Invocation) error {
	if !a.session.Logout() {
		inv.Println("You are already logged out.")
		return nil
	}
	inv.Println("You are now logged out.")
	return nil
}

func (a *App) whoami(_ context.Context, inv *command.Invocation) error {
	secrets, _ := inv.Flags.GetBool("secrets")
	id := a.session.Current(secrets)

	inv.Printf("Account: %s\n", id.Email)
	if secrets {
		inv.Printf("Password: %s\n", id.Password)
		inv.Printf("Token: %s\n", id.Token)
		return nil
	}
	inv.Println(config.Faint("Add '--secrets' to see the password and token."))
	return nil
}

// printRemoteError names the remote error code when there is one and
// leaves the session alone. The command is still recorded as failed.
func (a *App) printRemoteError(inv *command.Invocation, action string, err error) {
	a.lastErr = fmt.Errorf("could not %s: %w", action, err)
	if code, ok := client.ErrorCode(err); ok {
		inv.Printf("Error %d: Could not %s.\n", code, action)
	} else {
		inv.Printf("Error: Could not %s: %v\n", action, err)
	}
	if errors.Is(err, client.ErrInvalidCredentials) {
		inv.Println("Please check your email and password.")
		return
	}
	if a.cfg.Verbose {
		var apiErr *client.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			inv.Println(config.Faint(apiErr.Message))
		}
	}
}
