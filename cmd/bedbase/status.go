// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backing store availability",
		Long:  "Connect every configured backing store and report which handles are live. Unreachable optional stores degrade the catalog rather than failing it.",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	c, err := newCatalogContext(cmd)
	if err != nil {
		return err
	}
	defer c.Close() //nolint:errcheck

	status := c.Status()
	checks := []struct {
		name string
		ok   bool
	}{
		{"Relational store (" + status.Backend + ")", status.Relational},
		{"Object store", status.ObjectStore},
		{"Vector index", status.VectorIndex},
		{"Metadata service", status.Metadata},
		{"Embedding models", status.Embedding},
	}

	w := cmd.OutOrStdout()
	for _, check := range checks {
		state := "unavailable"
		if check.ok {
			state = "ok"
		}
		if _, err := fmt.Fprintf(w, "%-32s %s\n", check.name+":", state); err != nil {
			return err
		}
	}
	return nil
}

// renderYAML prints any value as YAML, shared by the read commands.
func renderYAML(cmd *cobra.Command, value any) error {
	out, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
