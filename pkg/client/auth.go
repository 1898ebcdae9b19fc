package client

import (
	"context"

	"github.com/omfj/appwash-cli/pkg/client/api"
)

// Auth defines the login exchange
type Auth interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, email, password string) (string, error)
}

type authClient struct {
	client *BaseClient
}

func NewAuthClient(client *BaseClient) Auth {
	return &authClient{client: client}
}

func (c *authClient) Login(ctx context.Context, email, password string) (string, error) {
	var response api.LoginResponse
	status, err := c.client.Post(ctx, "/login", &api.LoginRequest{Email: email, Password: password}, "", &response)
	if err != nil {
		return "", err
	}
	if response.Login == nil || response.Login.Token == "" {
		return "", malformed(status, "missing login.token")
	}

	return response.Login.Token, nil
}
