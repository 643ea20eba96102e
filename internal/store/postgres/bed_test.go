// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbase-dev/bedbase/internal/store"
)

// openTestStore connects to the database named by BEDBASE_TEST_POSTGRES_DSN,
// or skips the test when the variable is unset.
func openTestStore(t *testing.T) *RecordStore {
	t.Helper()

	dsn := os.Getenv("BEDBASE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("BEDBASE_TEST_POSTGRES_DSN not set")
	}

	s, err := NewRecordStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = s.db.Exec(`DELETE FROM bed`)
		_ = s.Close()
	})
	return s
}

func testBed(id string) *store.BedRow {
	n := 128.0
	now := time.Now().UTC().Truncate(time.Second)
	return &store.BedRow{
		ID:             id,
		Name:           "test bed",
		Description:    "integration fixture",
		SubmissionDate: now,
		LastUpdateDate: now,
		Stats:          store.BedStats{NumberOfRegions: &n},
		Classification: store.BedClassification{
			BedFormat:   "bed",
			BedType:     "bed6+4",
			GenomeAlias: "hg38",
		},
	}
}

func TestRecordStore_CreateGetRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	size := int64(2048)
	files := []store.FileRow{
		{Name: "bed_file", Path: "bed_files/a/b/abc.bed", Size: &size, Type: store.FileTypeFile, BedID: "abc123"},
		{Name: "chrombins", Path: "stats/abc123/chrombins.pdf", Type: store.FileTypePlot, BedID: "abc123"},
	}
	require.NoError(t, s.Create(ctx, testBed("abc123"), files, false))

	got, err := s.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "test bed", got.Name)
	assert.Equal(t, "hg38", got.Classification.GenomeAlias)
	require.NotNil(t, got.Stats.NumberOfRegions)
	assert.Equal(t, 128.0, *got.Stats.NumberOfRegions)
	assert.Nil(t, got.Stats.GCContent)

	rows, err := s.Files(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bed_file", rows[0].Name)
	require.NotNil(t, rows[0].Size)
	assert.Equal(t, int64(2048), *rows[0].Size)
}

func TestRecordStore_CreateConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testBed("dup001"), nil, false))
	err := s.Create(ctx, testBed("dup001"), nil, false)
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestRecordStore_Overwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	files := []store.FileRow{{Name: "bed_file", Path: "bed_files/o/l/old.bed", Type: store.FileTypeFile, BedID: "ow001"}}
	require.NoError(t, s.Create(ctx, testBed("ow001"), files, false))

	replacement := testBed("ow001")
	replacement.Name = "replaced"
	require.NoError(t, s.Create(ctx, replacement, nil, true))

	got, err := s.Get(ctx, "ow001")
	require.NoError(t, err)
	assert.Equal(t, "replaced", got.Name)

	rows, err := s.Files(ctx, "ow001")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecordStore_DeleteReturnsFiles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	files := []store.FileRow{{Name: "bed_file", Path: "bed_files/d/e/del.bed", Type: store.FileTypeFile, BedID: "del001"}}
	require.NoError(t, s.Create(ctx, testBed("del001"), files, false))

	removed, err := s.Delete(ctx, "del001")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "bed_files/d/e/del.bed", removed[0].Path)

	_, err = s.Get(ctx, "del001")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecordStore_NotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Files(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Delete(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecordStore_Summary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	b1 := testBed("sum001")
	b2 := testBed("sum002")
	b2.Classification.GenomeAlias = "mm10"
	files := []store.FileRow{{Name: "bed_file", Path: "bed_files/s/u/sum.bed", Type: store.FileTypeFile, BedID: "sum001"}}

	require.NoError(t, s.Create(ctx, b1, files, false))
	require.NoError(t, s.Create(ctx, b2, nil, false))

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.BedCount)
	assert.Equal(t, int64(1), sum.FileCount)
	assert.Equal(t, int64(2), sum.GenomeCount)
}
