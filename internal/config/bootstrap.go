// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package config

import (
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"

	bberr "github.com/bedbase-dev/bedbase/pkg/errors"
)

// DefaultConfigYAML is the commented starter config seeded on first run.
//
//go:embed bedbase.yaml.default
var DefaultConfigYAML []byte

// DefaultConfigPath resolves the per-user config location,
// ~/.config/bedbase/bedbase.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", bberr.Errorf(bberr.CodeConfigLoadReadFailure, "resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "bedbase", "bedbase.yaml"), nil
}

// BootstrapConfig seeds the starter config at the per-user location
// when no file is there yet. It reports the path it wrote. Anything
// that prevents the write, an unresolvable home directory included, is
// logged at debug level and answered with an empty path; startup
// carries on with built-in defaults.
func BootstrapConfig() string {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		slog.Debug("skipping config bootstrap", "error", err)
		return ""
	}

	if _, err := os.Stat(cfgPath); err == nil {
		// User already has a config, leave it alone.
		return ""
	}

	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Debug("skipping config bootstrap: cannot create directory", "path", dir, "error", err)
		return ""
	}

	if err := os.WriteFile(cfgPath, DefaultConfigYAML, 0o600); err != nil {
		slog.Debug("skipping config bootstrap: cannot write config", "path", cfgPath, "error", err)
		return ""
	}

	slog.Info("created default config", "path", cfgPath)
	return cfgPath
}
