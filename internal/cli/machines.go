package cli

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/omfj/appwash-cli/internal/command"
	"github.com/omfj/appwash-cli/internal/config"
	"github.com/omfj/appwash-cli/pkg/client/api"
)

const timeLayout = "2006-01-02 15:04:05"

func (a *App) listMachines(ctx context.Context, inv *command.Invocation) error {
	auth, err := a.session.AuthHeaders()
	if err != nil {
		inv.Println(command.NoticeNotLoggedIn)
		return nil
	}

	serviceType := a.cfg.ServiceType
	if all, _ := inv.Flags.GetBool("all"); all {
		serviceType = ""
	}

	var machines []api.Machine
	err = a.busy("Fetching machines", func() error {
		var err error
		machines, err = a.clients.Machines.ListMachines(ctx, auth.Token, a.cfg.LocationID, serviceType)
		return err
	})
	if err != nil {
		a.printRemoteError(inv, "get machine list", err)
		return nil
	}
	if len(machines) == 0 {
		inv.Printf("No machines found at location %s.\n", a.cfg.LocationID)
		return nil
	}

	tw := table.NewWriter()
	header := table.Row{"Machine", "State", "Started"}
	if serviceType == "" {
		header = append(header, "Type")
	}
	tw.AppendHeader(header)
	for _, m := range machines {
		started := ""
		if at, ok := m.StartedAt(); ok {
			started = at.Format(timeLayout)
		}
		row := table.Row{m.ExternalID, colorState(m.State), started}
		if serviceType == "" {
			row = append(row, m.ServiceType)
		}
		tw.AppendRow(row)
	}
	inv.Println(tw.Render())
	return nil
}

func colorState(state api.MachineState) string {
	switch state {
	case api.MachineStateFree:
		return config.BoldGreen(string(state))
	case api.MachineStateOccupied:
		return config.BoldYellow(string(state))
	case api.MachineStateStoppable:
		return config.BoldRed(string(state))
	default:
		return string(state)
	}
}

func (a *App) reserveMachine(ctx context.Context, inv *command.Invocation) error {
	return a.machineAction(ctx, inv, "reserve", "Starting machine", "Started machine %s.\n",
		a.clients.Machines.StartMachine)
}

func (a *App) stopMachine(ctx context.Context, inv *command.Invocation) error {
	return a.machineAction(ctx, inv, "stop", "Stopping machine", "Stopped machine %s.\n",
		a.clients.Machines.StopMachine)
}

func (a *App) machineAction(
	ctx context.Context,
	inv *command.Invocation,
	verb, progressMsg, doneFormat string,
	action func(ctx context.Context, token, machineID string) error,
) error {
	auth, err := a.session.AuthHeaders()
	if err != nil {
		inv.Println(command.NoticeNotLoggedIn)
		return nil
	}

	machineID := inv.Arg(0)
	if inv.Missing() {
		inv.Printf("What machine do you want to %s?\n", verb)
		machineID, err = a.console.ReadLine("Machine ID: ")
		if err != nil {
			inv.Println("Cancelled.")
			return nil
		}
	}
	machineID = strings.TrimSpace(machineID)
	if machineID == "" {
		inv.Println("No machine given.")
		return nil
	}

	err = a.busy(progressMsg, func() error {
		return action(ctx, auth.Token, machineID)
	})
	if err != nil {
		a.printRemoteError(inv, verb+" machine "+machineID, err)
		return nil
	}
	inv.Printf(doneFormat, machineID)
	return nil
}
