/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/dualstore/errors"
	"github.com/suparena/dualstore/models"
	"github.com/suparena/dualstore/registry"
	"github.com/suparena/dualstore/storagemodels"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <key>",
		Short: "Print one record, falling back to the remote store on a local miss",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCollection(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			rec, ok := sess.store.Get(cmd.Context(), c, args[1])
			if !ok {
				return NewExitError(ExitFailure, fmt.Sprintf("%s %q not found", c, args[1]))
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
}

// PutOptions holds flags for the put command.
type PutOptions struct {
	*RootOptions
	GenID bool
}

// NewPutCommand creates the put command.
func NewPutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "put <collection> [json]",
		Short: "Write a record locally and mirror it to the remote store",
		Long: `Write a record locally and mirror it to the remote store.

The record is read from the second argument, or from stdin when it is
omitted or "-". Field names use camelCase.

Example:
  dualstore put dictionary '{"word":"shpi","definitionEnglish":"house"}'
  echo '{"name":"ana","score":40}' | dualstore put scores --gen-id`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCollection(args[0])
			if err != nil {
				return err
			}
			src := "-"
			if len(args) == 2 {
				src = args[1]
			}
			rec, err := readRecord(cmd.InOrStdin(), src)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid record", err)
			}

			keyPath := registry.Default().KeyPath(c)
			if opts.GenID {
				if _, ok := rec.KeyValue(keyPath); !ok {
					rec[keyPath] = models.NewID()
				}
			}

			sess, err := openSession(cmd.Context(), opts.RootOptions, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.store.Put(cmd.Context(), c, rec); err != nil {
				return WrapExitError(ExitCommandError, "put failed", err)
			}
			key, _ := rec.KeyValue(keyPath)
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s %q\n", c, key)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.GenID, "gen-id", false, "generate a UUID when the record has no key")

	return cmd
}

func readRecord(stdin io.Reader, src string) (storagemodels.Record, error) {
	var raw []byte
	if src == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		raw = b
	} else {
		raw = []byte(src)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, errors.NewValidationError("", "empty input")
	}

	var rec storagemodels.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.NewValidationError("", "record must be a JSON object")
	}
	return rec, nil
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <key>",
		Short: "Delete a record locally; the remote delete runs in the background",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCollection(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.store.Delete(cmd.Context(), c, args[1]); err != nil {
				return WrapExitError(ExitCommandError, "delete failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %q\n", c, args[1])
			return nil
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "Print every locally stored record of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCollection(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			return writeJSON(cmd.OutOrStdout(), sess.store.GetAll(cmd.Context(), c))
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <collection>",
		Short: "Remove every local record of a collection; the remote store is untouched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCollection(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.store.ClearStore(cmd.Context(), c); err != nil {
				return WrapExitError(ExitCommandError, "clear failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", c)
			return nil
		},
	}
}
