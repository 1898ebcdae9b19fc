package fake

import (
	"context"

	"github.com/omfj/appwash-cli/pkg/client"
	"github.com/omfj/appwash-cli/pkg/client/api"
)

// MockClient implements every resource interface. Unset funcs return zero
// values and a nil error; GetBalance returns an empty balance, never nil.
type MockClient struct {
	LoginFunc        func(ctx context.Context, email, password string) (string, error)
	ListMachinesFunc func(ctx context.Context, token, locationID, serviceType string) ([]api.Machine, error)
	StartMachineFunc func(ctx context.Context, token, machineID string) error
	StopMachineFunc  func(ctx context.Context, token, machineID string) error
	GetBalanceFunc   func(ctx context.Context, token string) (*api.Balance, error)
	ListHistoryFunc  func(ctx context.Context, token string) ([]api.Purchase, error)

	Calls []string
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// ClientSet returns a client set whose resources are all backed by m.
func (m *MockClient) ClientSet() *client.ClientSet {
	return &client.ClientSet{Auth: m, Machines: m, Account: m}
}

func (m *MockClient) Login(ctx context.Context, email, password string) (string, error) {
	m.Calls = append(m.Calls, "Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", nil
}

func (m *MockClient) ListMachines(ctx context.Context, token, locationID, serviceType string) ([]api.Machine, error) {
	m.Calls = append(m.Calls, "ListMachines")
	if m.ListMachinesFunc != nil {
		return m.ListMachinesFunc(ctx, token, locationID, serviceType)
	}
	return nil, nil
}

func (m *MockClient) StartMachine(ctx context.Context, token, machineID string) error {
	m.Calls = append(m.Calls, "StartMachine")
	if m.StartMachineFunc != nil {
		return m.StartMachineFunc(ctx, token, machineID)
	}
	return nil
}

func (m *MockClient) StopMachine(ctx context.Context, token, machineID string) error {
	m.Calls = append(m.Calls, "StopMachine")
	if m.StopMachineFunc != nil {
		return m.StopMachineFunc(ctx, token, machineID)
	}
	return nil
}

func (m *MockClient) GetBalance(ctx context.Context, token string) (*api.Balance, error) {
	m.Calls = append(m.Calls, "GetBalance")
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, token)
	}
	return &api.Balance{}, nil
}

func (m *MockClient) ListHistory(ctx context.Context, token string) ([]api.Purchase, error) {
	m.Calls = append(m.Calls, "ListHistory")
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(ctx, token)
	}
	return nil, nil
}
