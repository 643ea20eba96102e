// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package store

import "context"

// RecordStore is the relational layer for bed records and their file
// rows. It is the source of truth for record existence: the vector
// index and external metadata document are best-effort companions.
type RecordStore interface {
	// Create inserts the bed row and one file row per descriptor in a
	// single transaction. With overwrite set, an existing row for the
	// same identifier is replaced along with its file rows; without it,
	// a duplicate identifier fails with ErrConflict.
	Create(ctx context.Context, bed *BedRow, files []FileRow, overwrite bool) error

	// Get returns the bed row for the identifier, or ErrNotFound.
	Get(ctx context.Context, id string) (*BedRow, error)

	// Files returns every file row attached to the identifier, ordered
	// by name. The bed row's existence is checked first so a missing
	// record surfaces as ErrNotFound rather than an empty slice.
	Files(ctx context.Context, id string) ([]FileRow, error)

	// Delete removes the bed row and its file rows, returning the file
	// rows that were attached so callers can clean up remote objects.
	Delete(ctx context.Context, id string) ([]FileRow, error)

	// Summary reports catalog-wide counts.
	Summary(ctx context.Context) (*CatalogSummary, error)

	Close() error
}
