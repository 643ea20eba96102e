// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

// Package vector maintains the similarity index over bed record
// embeddings and resolves nearest-neighbour queries back to registry
// identifiers.
package vector

import "context"

// Hit is one nearest-neighbour match.
type Hit struct {
	// ID is the registry identifier of the matched record.
	ID string

	// Score is the backend similarity score, higher is closer.
	Score float32

	// Payload carries the descriptive fields stored with the point.
	Payload map[string]string
}

// Index stores embeddings keyed by registry identifier.
type Index interface {
	// Upsert inserts or replaces the embedding for id.
	Upsert(ctx context.Context, id string, embedding []float32, payload map[string]string) error

	// Nearest returns up to limit hits closest to query, skipping
	// the first offset matches.
	Nearest(ctx context.Context, query []float32, limit, offset uint64) ([]Hit, error)

	// Remove drops the point for id. Removing an unindexed id is
	// not an error.
	Remove(ctx context.Context, id string) error

	Close() error
}
