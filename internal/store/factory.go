// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package store

import (
	"fmt"
	"sync"
)

// Factory creates a RecordStore from a connection string. The meaning
// of dsn is backend-specific (Postgres URL, or ignored by memory).
type Factory func(dsn string) (RecordStore, error)

var (
	factories   = map[string]Factory{}
	factoriesMu sync.RWMutex
)

// RegisterBackend registers a factory for a named storage backend.
// Backend packages call this from init(). This function is goroutine-safe.
func RegisterBackend(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// New creates a RecordStore for the named backend, defaulting to
// "postgres" when name is empty.
func New(name, dsn string) (RecordStore, error) {
	if name == "" {
		name = "postgres"
	}

	factoriesMu.RLock()
	factory, ok := factories[name]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage backend: %q", name)
	}

	return factory(dsn)
}
