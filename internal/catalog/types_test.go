// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

func TestCoerceStats(t *testing.T) {
	stats, err := CoerceStats(map[string]any{
		"number_of_regions": 128.0,
		"gc_content":        0.42,
	})
	require.NoError(t, err)
	require.NotNil(t, stats.NumberOfRegions)
	assert.Equal(t, 128.0, *stats.NumberOfRegions)
	require.NotNil(t, stats.GCContent)
	assert.Equal(t, 0.42, *stats.GCContent)
	assert.Nil(t, stats.MedianTSSDist)
}

func TestCoerceStats_UnknownField(t *testing.T) {
	_, err := CoerceStats(map[string]any{"regions_count": 128.0})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestCoerceClassification(t *testing.T) {
	c, err := CoerceClassification(map[string]any{
		"bed_format":   "bed",
		"bed_type":     "bed6+4",
		"genome_alias": "hg38",
	})
	require.NoError(t, err)
	assert.Equal(t, "hg38", c.GenomeAlias)
	assert.Equal(t, "bed6+4", c.BedType)
}

func TestCoerceFiles(t *testing.T) {
	files, err := CoerceFiles(map[string]any{
		"bed_file": map[string]any{"name": "bed_file", "path": "/tmp/x.bed"},
	})
	require.NoError(t, err)
	require.NotNil(t, files.BedFile)
	assert.Equal(t, "/tmp/x.bed", files.BedFile.Path)
	assert.Nil(t, files.BigBedFile)
}

func TestCoerceFiles_UnknownRole(t *testing.T) {
	_, err := CoerceFiles(map[string]any{
		"wig_file": map[string]any{"path": "/tmp/x.wig"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestCoercePlots(t *testing.T) {
	plots, err := CoercePlots(map[string]any{
		"chrombins":      map[string]any{"path": "/tmp/chrombins.pdf", "path_thumbnail": "/tmp/chrombins.png"},
		"open_chromatin": map[string]any{"path": "/tmp/oc.pdf"},
	})
	require.NoError(t, err)
	require.NotNil(t, plots.ChromBins)
	assert.Equal(t, "/tmp/chrombins.png", plots.ChromBins.PathThumbnail)
	require.NotNil(t, plots.OpenChromatin)
	assert.Nil(t, plots.GCContent)
}

func TestFileDescriptor_MarkUploaded(t *testing.T) {
	d := &FileDescriptor{Name: "bed_file", Path: "/tmp/x.bed"}
	d.MarkUploaded("bed_files/a/b/x.bed", "", 12)

	assert.Equal(t, "bed_files/a/b/x.bed", d.Path)
	assert.Empty(t, d.PathThumbnail)
	require.NotNil(t, d.Size)
	assert.Equal(t, int64(12), *d.Size)
}

func TestFileDescriptor_IsZero(t *testing.T) {
	var nilDesc *FileDescriptor
	assert.True(t, nilDesc.IsZero())
	assert.True(t, (&FileDescriptor{Name: "bed_file"}).IsZero())
	assert.False(t, (&FileDescriptor{Path: "/tmp/x.bed"}).IsZero())
}

func TestDescriptorsSkipEmptySlots(t *testing.T) {
	files := BedFiles{
		BedFile:    &FileDescriptor{Name: "bed_file", Path: "/tmp/x.bed"},
		BigBedFile: &FileDescriptor{Name: "bigbed_file"},
	}
	got := files.descriptors()
	require.Len(t, got, 1)
	assert.Contains(t, got, "bed_file")
}
