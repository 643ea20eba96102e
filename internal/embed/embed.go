// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

// Package embed turns search text and genomic region sets into
// vectors via an external embedding service.
package embed

import "context"

// TextEncoder embeds a natural-language query.
type TextEncoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// RegionEncoder embeds each region of a region set individually. The
// record-level vector is the column-wise mean of the results.
type RegionEncoder interface {
	EncodeRegions(ctx context.Context, regions []Region) ([][]float32, error)
}
