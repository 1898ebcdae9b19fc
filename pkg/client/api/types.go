// Package api holds the wire types of the AppWash REST API.
package api

import "time"

// Status is embedded in every response. ErrorCode 0 means success.
type Status struct {
	ErrorCode        int    `json:"errorCode"`
	ErrorDescription string `json:"errorDescription,omitempty"`
}

// StandardResponse wraps the data payload most endpoints return.
type StandardResponse[T any] struct {
	Status
	Data T `json:"data"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status
	Login *struct {
		Token string `json:"token"`
	} `json:"login"`
}

// MachineState is the service-defined state of a connector. Values the
// client does not know are kept verbatim.
type MachineState string

const (
	MachineStateFree      MachineState = "FREE"
	MachineStateOccupied  MachineState = "OCCUPIED"
	MachineStateStoppable MachineState = "STOPPABLE"
)

// Running reports whether the machine has a session that started at
// LastSessionStart.
func (s MachineState) Running() bool {
	return s == MachineStateOccupied || s == MachineStateStoppable
}

type ListMachinesRequest struct {
	ServiceType string `json:"serviceType,omitempty"`
}

type Machine struct {
	ExternalID  string       `json:"externalId"`
	State       MachineState `json:"state"`
	ServiceType string       `json:"serviceType,omitempty"`
	// LastSessionStart is in unix seconds.
	LastSessionStart *int64 `json:"lastSessionStart,omitempty"`
}

// StartedAt returns the session start time when the machine is running.
func (m Machine) StartedAt() (time.Time, bool) {
	if !m.State.Running() || m.LastSessionStart == nil {
		return time.Time{}, false
	}
	return time.Unix(*m.LastSessionStart, 0), true
}

type MachineActionRequest struct {
	SourceChannel string `json:"sourceChannel"`
}

const SourceChannelWebsite = "WEBSITE"

type Balance struct {
	BalanceCents int64  `json:"balanceCents"`
	Currency     string `json:"currency"`
}

type Purchase struct {
	// Timestamp is in unix seconds.
	Timestamp   int64  `json:"mutationTimestamp"`
	Description string `json:"description"`
	ExternalID  string `json:"externalId,omitempty"`
	AmountCents int64  `json:"mutationCents"`
	Currency    string `json:"currency"`
}

func (p Purchase) Time() time.Time {
	return time.Unix(p.Timestamp, 0)
}
