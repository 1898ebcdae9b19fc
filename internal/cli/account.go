package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/omfj/appwash-cli/internal/command"
	"github.com/omfj/appwash-cli/internal/config"
	"github.com/omfj/appwash-cli/pkg/client/api"
)

func (a *App) balance(ctx context.Context, inv *command.Invocation) error {
	auth, err := a.session.AuthHeaders()
	if err != nil {
		inv.Println(command.NoticeNotLoggedIn)
		return nil
	}

	var balance *api.Balance
	err = a.busy("Fetching balance", func() error {
		var err error
		balance, err = a.clients.Account.GetBalance(ctx, auth.Token)
		return err
	})
	if err != nil {
		a.printRemoteError(inv, "get balance", err)
		return nil
	}

	inv.Printf("Balance: %s\n", config.BoldGreen(a.formatAmount(balance.BalanceCents, balance.Currency)))
	return nil
}

func (a *App) history(ctx context.Context, inv *command.Invocation) error {
	limit, _ := inv.Flags.GetInt("limit")
	if limit < 0 {
		inv.Println("--limit must be 0 or more.")
		return nil
	}

	auth, err := a.session.AuthHeaders()
	if err != nil {
		inv.Println(command.NoticeNotLoggedIn)
		return nil
	}

	var purchases []api.Purchase
	err = a.busy("Fetching history", func() error {
		var err error
		purchases, err = a.clients.Account.ListHistory(ctx, auth.Token)
		return err
	})
	if err != nil {
		a.printRemoteError(inv, "get history", err)
		return nil
	}
	if len(purchases) == 0 {
		inv.Println("No purchases yet.")
		return nil
	}

	slices.SortStableFunc(purchases, func(x, y api.Purchase) int {
		return cmp.Compare(y.Timestamp, x.Timestamp)
	})
	if limit > 0 && len(purchases) > limit {
		purchases = purchases[:limit]
	}

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Date", "Description", "Machine", "Amount"})
	for _, p := range purchases {
		tw.AppendRow(table.Row{
			p.Time().Format(timeLayout),
			p.Description,
			p.ExternalID,
			a.formatAmount(p.AmountCents, p.Currency),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight}})
	inv.Println(tw.Render())
	return nil
}

// formatAmount renders minor units in the configured language, falling
// back to a plain number for currencies x/text does not know.
func (a *App) formatAmount(cents int64, code string) string {
	amount := float64(cents) / 100
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	p := message.NewPrinter(language.Make(a.cfg.Language))
	return p.Sprint(currency.ISO(unit.Amount(amount)))
}
