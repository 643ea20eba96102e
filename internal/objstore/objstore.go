// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

// Package objstore stores bed file artifacts in an S3-compatible
// object store, keyed by the catalog's path conventions.
package objstore

import "context"

// Store uploads and removes catalog artifacts by object key.
type Store interface {
	// Upload copies the file at localPath to key and returns the
	// number of bytes written.
	Upload(ctx context.Context, localPath, key string) (int64, error)

	// Delete removes the object at key. Deleting a key that does
	// not exist is not an error.
	Delete(ctx context.Context, key string) error

	// Stat returns the stored size of the object at key.
	Stat(ctx context.Context, key string) (int64, error)
}
