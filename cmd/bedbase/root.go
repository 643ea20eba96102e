// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bedbase-dev/bedbase/internal/catalog"
	"github.com/bedbase-dev/bedbase/internal/config"
	_ "github.com/bedbase-dev/bedbase/internal/store/memory"
	_ "github.com/bedbase-dev/bedbase/internal/store/postgres"
	bberr "github.com/bedbase-dev/bedbase/pkg/errors"
)

// NewRootCmd creates the root bedbase command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bedbase",
		Short:         "bedbase — genomic interval file catalog",
		Long:          "bedbase manages metadata and derived artifacts for genomic interval files across a relational store, object store, vector index and external metadata service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(cmd)
		},
	}

	// Global flags — these map to viper keys via initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newStatusCmd(),
		newSearchCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newSummaryCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper sets up the global Viper with defaults, env bindings, and
// optional config file so the standard precedence (flag > env > file >
// defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return bberr.Errorf(bberr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
	} else {
		// Auto-discover bedbase.yaml from standard locations.
		v.SetConfigName("bedbase")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bedbase")
		v.AddConfigPath("/etc/bedbase")
		// No config file is fine — defaults and env vars still apply.
		// Parse or permission errors must surface.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return bberr.Errorf(bberr.CodeConfigLoadReadFailure, "reading config: %w", err)
			}
			// No config found anywhere — bootstrap a default to ~/.config/bedbase/.
			if path := config.BootstrapConfig(); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return bberr.Errorf(bberr.CodeConfigLoadReadFailure, "reading bootstrapped config: %w", err)
				}
			}
		}
	}

	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return bberr.Errorf(bberr.CodeCLISetupFailure, "binding verbose flag: %w", err)
	}

	if v.GetBool("verbose") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	return nil
}

// newCatalogContext parses the global viper into a validated config
// and connects the backing stores.
func newCatalogContext(cmd *cobra.Command) (*catalog.Context, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return catalog.NewContext(cmd.Context(), cfg)
}
