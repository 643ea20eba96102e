// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

// Package memory provides an in-memory RecordStore for tests and
// local development without a Postgres server.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bedbase-dev/bedbase/internal/store"
)

var _ store.RecordStore = (*RecordStore)(nil)

type RecordStore struct {
	mu    sync.RWMutex
	beds  map[string]store.BedRow
	files map[string][]store.FileRow
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		beds:  make(map[string]store.BedRow),
		files: make(map[string][]store.FileRow),
	}
}

func init() {
	store.RegisterBackend("memory", func(string) (store.RecordStore, error) {
		return NewRecordStore(), nil
	})
}

func (s *RecordStore) Create(_ context.Context, bed *store.BedRow, files []store.FileRow, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.beds[bed.ID]; ok && !overwrite {
		return fmt.Errorf("bed %s: %w", bed.ID, store.ErrConflict)
	}

	s.beds[bed.ID] = *bed
	rows := make([]store.FileRow, len(files))
	copy(rows, files)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	s.files[bed.ID] = rows
	return nil
}

func (s *RecordStore) Get(_ context.Context, id string) (*store.BedRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bed, ok := s.beds[id]
	if !ok {
		return nil, fmt.Errorf("bed %s: %w", id, store.ErrNotFound)
	}
	return &bed, nil
}

func (s *RecordStore) Files(_ context.Context, id string) ([]store.FileRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.beds[id]; !ok {
		return nil, fmt.Errorf("bed %s: %w", id, store.ErrNotFound)
	}

	rows := make([]store.FileRow, len(s.files[id]))
	copy(rows, s.files[id])
	return rows, nil
}

func (s *RecordStore) Delete(_ context.Context, id string) ([]store.FileRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.beds[id]; !ok {
		return nil, fmt.Errorf("bed %s: %w", id, store.ErrNotFound)
	}

	rows := s.files[id]
	delete(s.beds, id)
	delete(s.files, id)
	return rows, nil
}

func (s *RecordStore) Summary(_ context.Context) (*store.CatalogSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genomes := make(map[string]struct{})
	var fileCount int64
	for id, bed := range s.beds {
		if bed.Classification.GenomeAlias != "" {
			genomes[bed.Classification.GenomeAlias] = struct{}{}
		}
		fileCount += int64(len(s.files[id]))
	}

	return &store.CatalogSummary{
		BedCount:    int64(len(s.beds)),
		FileCount:   fileCount,
		GenomeCount: int64(len(genomes)),
	}, nil
}

func (s *RecordStore) Close() error { return nil }
