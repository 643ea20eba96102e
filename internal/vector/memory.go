// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package vector

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

var _ Index = (*MemoryIndex)(nil)

// MemoryIndex ranks points by exact cosine similarity. For tests and
// local development without a qdrant server.
type MemoryIndex struct {
	mu     sync.RWMutex
	points map[string]memoryPoint
}

type memoryPoint struct {
	id        string
	embedding []float32
	payload   map[string]string
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{points: make(map[string]memoryPoint)}
}

func (m *MemoryIndex) Upsert(_ context.Context, id string, embedding []float32, payload map[string]string) error {
	if len(embedding) == 0 {
		return errors.Errorf(errors.CodeVectorUpsertFailure, "empty embedding for %s", id)
	}

	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	fields := make(map[string]string, len(payload))
	for k, v := range payload {
		fields[k] = v
	}

	m.mu.Lock()
	m.points[PointID(id)] = memoryPoint{id: id, embedding: vec, payload: fields}
	m.mu.Unlock()
	return nil
}

func (m *MemoryIndex) Nearest(_ context.Context, query []float32, limit, offset uint64) ([]Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := make([]Hit, 0, len(m.points))
	for _, p := range m.points {
		score, ok := cosine(query, p.embedding)
		if !ok {
			continue
		}
		// Hand out a copy so a caller mutating the hit payload cannot
		// reach the stored point.
		payload := make(map[string]string, len(p.payload))
		for k, v := range p.payload {
			payload[k] = v
		}
		hits = append(hits, Hit{ID: p.id, Score: score, Payload: payload})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if offset >= uint64(len(hits)) {
		return nil, nil
	}
	hits = hits[offset:]
	if uint64(len(hits)) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *MemoryIndex) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.points, PointID(id))
	m.mu.Unlock()
	return nil
}

func (m *MemoryIndex) Close() error { return nil }

// cosine reports the cosine similarity of a and b, false when the
// lengths differ or either vector is zero.
func cosine(a, b []float32) (float32, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb))), true
}
