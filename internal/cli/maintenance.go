/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/suparena/dualstore"
	"github.com/suparena/dualstore/storagemodels"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Open and migrate the local database and report whether it is usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			if !sess.store.VerifyIntegrity(cmd.Context()) {
				return NewExitError(ExitFailure, fmt.Sprintf("local store at %s is not usable", sess.cfg.LocalPath))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", sess.cfg.LocalPath)
			return nil
		},
	}
}

// PullOptions holds flags for the pull command.
type PullOptions struct {
	*RootOptions
	PageSize int32
}

// NewPullCommand creates the pull command.
func NewPullCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PullOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pull <collection>",
		Short: "Copy every remote record of a synced collection into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCollection(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(cmd.Context(), opts.RootOptions, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			progress := func(p storagemodels.ScanProgress) {
				sess.logger.Debug().Int64("rows", p.RowsProcessed).Int("pages", p.PagesProcessed).
					Float64("rows_per_sec", p.CurrentRate).Msg("pull progress")
			}

			start := time.Now()
			stats, err := sess.store.Pull(cmd.Context(), c,
				storagemodels.WithPageSize(opts.PageSize),
				storagemodels.WithProgressHandler(progress))
			if err != nil {
				return WrapExitError(ExitCommandError, "pull failed", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pulled %s: %d fetched, %d stored, %d skipped, %d remote errors in %s\n",
				c, stats.Fetched, stats.Hydrated, stats.Skipped, stats.RemoteErrors, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().Int32Var(&opts.PageSize, "page-size", 100, "rows per remote page")

	return cmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := dualstore.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dualstore version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			fmt.Fprintf(out, "Local schema version: %d\n", info.SchemaVersion)
			return nil
		},
	}
}
