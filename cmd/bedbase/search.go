// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bedbase-dev/bedbase/internal/catalog"
	bberr "github.com/bedbase-dev/bedbase/pkg/errors"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search bed records by text",
		Long:  "Embed a natural-language query and list the most similar bed records from the vector index.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}

	cmd.Flags().Uint64("limit", 10, "maximum number of results")
	cmd.Flags().Uint64("offset", 0, "number of results to skip")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return bberr.New(bberr.CodeCLIInputInvalid, "empty search query")
	}
	limit, _ := cmd.Flags().GetUint64("limit")
	offset, _ := cmd.Flags().GetUint64("offset")

	c, err := newCatalogContext(cmd)
	if err != nil {
		return err
	}
	defer c.Close() //nolint:errcheck

	results, err := catalog.NewSearch(catalog.NewManager(c)).ByText(cmd.Context(), query, limit, offset)
	if err != nil {
		return err
	}

	type entry struct {
		ID     string  `yaml:"id"`
		Name   string  `yaml:"name,omitempty"`
		Genome string  `yaml:"genome,omitempty"`
		Score  float32 `yaml:"score"`
	}
	entries := make([]entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, entry{
			ID:     r.Record.ID,
			Name:   r.Record.Name,
			Genome: r.Record.Classification.GenomeAlias,
			Score:  r.Score,
		})
	}
	return renderYAML(cmd, entries)
}
