/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"github.com/spf13/cobra"

	"github.com/suparena/dualstore/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Offline    bool
	Verbose    bool

	loader config.Loader
}

// NewRootCommand creates the root command for the dualstore CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.Loader{})
}

func newRootCommand(loader config.Loader) *cobra.Command {
	opts := &RootOptions{loader: loader}

	cmd := &cobra.Command{
		Use:   "dualstore",
		Short: "Local-first record store with a hosted backing tier",
		Long: `dualstore keeps records in an embedded SQLite database and mirrors synced
collections to DynamoDB or PostgreSQL on a best-effort basis.

Configuration comes from --config (YAML), .env and DUALSTORE_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "never contact the remote store")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewPutCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewPullCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
