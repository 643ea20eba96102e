// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package catalog

import (
	"context"
	"log/slog"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// Search resolves natural-language queries against the vector index
// and hydrates each hit into its full record view.
type Search struct {
	ctx     *Context
	manager *Manager
}

// NewSearch builds a search facade sharing the manager's context.
func NewSearch(m *Manager) *Search {
	return &Search{ctx: m.ctx, manager: m}
}

// SearchResult pairs one resolved record with its similarity score.
type SearchResult struct {
	Score  float32      `json:"score"`
	Record *BedMetadata `json:"record"`
}

// ByText embeds query, fetches the nearest neighbours in
// [offset, offset+limit) and resolves each identifier through the
// manager. Hits whose identifier no longer resolves are dropped with
// a logged note.
func (s *Search) ByText(ctx context.Context, query string, limit, offset uint64) ([]SearchResult, error) {
	if s.ctx.TextEncoder() == nil {
		return nil, errors.New(errors.CodeEmbedModelUnavailable, "no text embedding model")
	}
	if s.ctx.Vectors() == nil {
		return nil, errors.New(errors.CodeVectorIndexUnavailable, "no vector index handle")
	}

	embedding, err := s.ctx.TextEncoder().Encode(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.ctx.Vectors().Nearest(ctx, embedding, limit, offset)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		view, err := s.manager.Get(ctx, hit.ID)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.Info("dropping search hit without a record", "id", hit.ID)
			} else {
				slog.Warn("dropping unresolvable search hit", "id", hit.ID, "error", err)
			}
			continue
		}
		results = append(results, SearchResult{Score: hit.Score, Record: view})
	}
	return results, nil
}
