package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/omfj/appwash-cli/pkg/client/api"
)

// Machines defines the connector operations
type Machines interface {
	// ListMachines lists the machines at a location. An empty serviceType
	// lists every service type.
	ListMachines(ctx context.Context, token, locationID, serviceType string) ([]api.Machine, error)
	StartMachine(ctx context.Context, token, machineID string) error
	StopMachine(ctx context.Context, token, machineID string) error
}

type machinesClient struct {
	client *BaseClient
}

func NewMachinesClient(client *BaseClient) Machines {
	return &machinesClient{client: client}
}

func (c *machinesClient) ListMachines(ctx context.Context, token, locationID, serviceType string) ([]api.Machine, error) {
	path := fmt.Sprintf("/location/%s/connectorsv2", url.PathEscape(locationID))
	var response api.StandardResponse[[]api.Machine]
	status, err := c.client.Post(ctx, path, &api.ListMachinesRequest{ServiceType: serviceType}, token, &response)
	if err != nil {
		return nil, err
	}
	if response.Data == nil {
		return nil, malformed(status, "missing data")
	}

	return response.Data, nil
}

func (c *machinesClient) StartMachine(ctx context.Context, token, machineID string) error {
	return c.action(ctx, token, machineID, "start")
}

func (c *machinesClient) StopMachine(ctx context.Context, token, machineID string) error {
	return c.action(ctx, token, machineID, "stop")
}

func (c *machinesClient) action(ctx context.Context, token, machineID, verb string) error {
	path := fmt.Sprintf("/connector/%s/%s", url.PathEscape(machineID), verb)
	_, err := c.client.Post(ctx, path, &api.MachineActionRequest{SourceChannel: api.SourceChannelWebsite}, token, nil)
	return err
}
