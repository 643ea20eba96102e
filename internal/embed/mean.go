// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package embed

import "github.com/bedbase-dev/bedbase/pkg/errors"

// MeanVector reduces per-region vectors to one record-level vector by
// taking the column-wise mean. All vectors must share a dimension.
func MeanVector(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, errors.New(errors.CodeEmbedInputInvalid, "no vectors to average")
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New(errors.CodeEmbedInputInvalid, "zero-dimension vector")
	}

	sums := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, errors.Errorf(errors.CodeEmbedInputInvalid,
				"vector dimension mismatch: %d vs %d", len(v), dim)
		}
		for i, x := range v {
			sums[i] += float64(x)
		}
	}

	mean := make([]float32, dim)
	n := float64(len(vectors))
	for i, s := range sums {
		mean[i] = float32(s / n)
	}
	return mean, nil
}
