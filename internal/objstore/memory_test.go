// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package objstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

func TestMemoryStore_UploadStatDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	content := []byte("chr1\t0\t100\n")
	src := filepath.Join(t.TempDir(), "x.bed")
	require.NoError(t, os.WriteFile(src, content, 0o644))

	n, err := s.Upload(ctx, src, "bed_files/a/b/x.bed")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	size, err := s.Stat(ctx, "bed_files/a/b/x.bed")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	require.NoError(t, s.Delete(ctx, "bed_files/a/b/x.bed"))
	_, err = s.Stat(ctx, "bed_files/a/b/x.bed")
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestMemoryStore_UploadMissingSource(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Upload(context.Background(), "/nonexistent/x.bed", "bed_files/x/y/x.bed")
	require.Error(t, err)
	assert.Equal(t, errors.CodeObjectUploadFailure, errors.CodeOf(err))
}

func TestMemoryStore_DeleteMissingIsNoop(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Delete(context.Background(), "never/uploaded"))
}
