// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package objstore

import (
	"context"
	"os"
	"sync"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps object contents in a map. For tests and local
// development without an S3 endpoint.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(_ context.Context, localPath, key string) (int64, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeObjectUploadFailure,
			"reading upload source", errors.Field("path", localPath))
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return int64(len(data)), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Stat(_ context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return 0, errors.Errorf(errors.CodeObjectStoreUnavailable, "no object at key %q", key)
	}
	return int64(len(data)), nil
}

// Keys lists stored object keys. Test helper.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
