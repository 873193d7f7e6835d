package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/bankalerts/internal/config"
)

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "bankalerts",
		Short: "Banking notification dispatch service",
		Long: `bankalerts turns banking events (high value transactions, account status
changes and account lifecycle events) into customer emails and SMS messages.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultLocalEnvFile,
		"Optional dotenv file merged into the environment before loading config")

	root.AddCommand(NewServeCmd(&envFile))
	root.AddCommand(NewPreviewCmd())
	root.AddCommand(NewVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
