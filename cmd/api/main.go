package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yash-2200030856/Sanchari-escapes/internal/config"
)

const (
	flagEnvFile = "env-file"
	exitConfig  = 2
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sanchari-api: %v\n", err)
		if errors.Is(err, config.ErrMissingConfig) {
			os.Exit(exitConfig)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:           "sanchari-api",
		Short:         "Sanchari Escapes booking and admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, flagEnvFile, "", "dotenv file to load before reading the environment (default ./.env)")

	cmd.AddCommand(
		newServeCommand(&envFile),
		newMigrateCommand(&envFile),
		newMintTokenCommand(&envFile),
	)
	return cmd
}
