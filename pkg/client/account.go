package client

import (
	"context"

	"github.com/omfj/appwash-cli/pkg/client/api"
)

// Account defines the prepaid account operations
type Account interface {
	GetBalance(ctx context.Context, token string) (*api.Balance, error)
	// ListHistory returns purchases and top-ups as the service orders them.
	ListHistory(ctx context.Context, token string) ([]api.Purchase, error)
}

type accountClient struct {
	client *BaseClient
}

func NewAccountClient(client *BaseClient) Account {
	return &accountClient{client: client}
}

func (c *accountClient) GetBalance(ctx context.Context, token string) (*api.Balance, error) {
	var response api.StandardResponse[*api.Balance]
	status, err := c.client.Get(ctx, "/account/getprepaid", token, &response)
	if err != nil {
		return nil, err
	}
	if response.Data == nil || response.Data.Currency == "" {
		return nil, malformed(status, "missing data.currency")
	}

	return response.Data, nil
}

func (c *accountClient) ListHistory(ctx context.Context, token string) ([]api.Purchase, error) {
	var response api.StandardResponse[[]api.Purchase]
	status, err := c.client.Get(ctx, "/account/prepaid/transactions", token, &response)
	if err != nil {
		return nil, err
	}
	if response.Data == nil {
		return nil, malformed(status, "missing data")
	}

	return response.Data, nil
}
