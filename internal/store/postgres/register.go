// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package postgres

import "github.com/bedbase-dev/bedbase/internal/store"

func init() {
	store.RegisterBackend("postgres", func(dsn string) (store.RecordStore, error) {
		return NewRecordStore(dsn)
	})
}
