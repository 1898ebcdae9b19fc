package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/omfj/appwash-cli/internal/cli"
	"github.com/omfj/appwash-cli/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "appwash",
		Short: "Interactive client for AppWash laundry machines",
		Long: `appwash opens an interactive prompt for the AppWash laundry service.
Log in, list machines, start and stop them, and check your balance.
Type 'help' at the prompt for the list of commands.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Init(afero.NewOsFs())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get()
			if err != nil {
				return err
			}
			return cli.Run(cmd.Context(), cfg)
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
