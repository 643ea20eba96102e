// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bedbase-dev/bedbase/internal/catalog"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <identifier>",
		Short: "Show one bed record",
		Long:  "Assemble and print the full view of a bed record: row, files, plots and external metadata.",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}

	cmd.Flags().String("projection", "full", "one of full, stats, classification, files, plots, objects, raw")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	c, err := newCatalogContext(cmd)
	if err != nil {
		return err
	}
	defer c.Close() //nolint:errcheck

	m := catalog.NewManager(c)
	ctx := cmd.Context()
	id := args[0]

	projection, _ := cmd.Flags().GetString("projection")
	var view any
	switch projection {
	case "full":
		view, err = m.Get(ctx, id)
	case "stats":
		view, err = m.Stats(ctx, id)
	case "classification":
		view, err = m.Classification(ctx, id)
	case "files":
		view, err = m.Files(ctx, id)
	case "plots":
		view, err = m.Plots(ctx, id)
	case "objects":
		view, err = m.Objects(ctx, id)
	case "raw":
		view, err = m.RawMetadata(ctx, id)
	default:
		return fmt.Errorf("unknown projection %q", projection)
	}
	if err != nil {
		return err
	}
	return renderYAML(cmd, view)
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <identifier>",
		Short: "Delete a bed record",
		Long:  "Remove the relational rows for a record, then best-effort clean its objects and vector index entry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCatalogContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close() //nolint:errcheck

			if err := catalog.NewManager(c).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show catalog-wide counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newCatalogContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close() //nolint:errcheck

			sum, err := catalog.NewManager(c).Summary(cmd.Context())
			if err != nil {
				return err
			}
			return renderYAML(cmd, sum)
		},
	}
}
