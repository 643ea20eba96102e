// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

// Package catalog orchestrates bed record writes and reads across the
// relational store, object store, vector index and external metadata
// service.
package catalog

import (
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/bedbase-dev/bedbase/internal/store"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// FileDescriptor describes one artifact attached to a bed record.
// Path and PathThumbnail start as local filesystem paths and become
// remote object keys once the descriptor is synced.
type FileDescriptor struct {
	Name          string `mapstructure:"name" json:"name,omitempty" yaml:"name,omitempty"`
	Path          string `mapstructure:"path" json:"path,omitempty" yaml:"path,omitempty"`
	PathThumbnail string `mapstructure:"path_thumbnail" json:"path_thumbnail,omitempty" yaml:"path_thumbnail,omitempty"`
	Description   string `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Size          *int64 `mapstructure:"size" json:"size,omitempty" yaml:"size,omitempty"`
}

// IsZero reports whether the descriptor carries nothing to sync or
// persist.
func (d *FileDescriptor) IsZero() bool {
	return d == nil || d.Path == ""
}

// MarkUploaded rewrites the descriptor to its remote location. Call
// only after the upload succeeded; Size is never set before that.
func (d *FileDescriptor) MarkUploaded(key, thumbnailKey string, size int64) {
	d.Path = key
	if thumbnailKey != "" {
		d.PathThumbnail = thumbnailKey
	}
	d.Size = &size
}

// BedFiles holds the primary data artifacts of a record.
type BedFiles struct {
	BedFile    *FileDescriptor `mapstructure:"bed_file" json:"bed_file,omitempty" yaml:"bed_file,omitempty"`
	BigBedFile *FileDescriptor `mapstructure:"bigbed_file" json:"bigbed_file,omitempty" yaml:"bigbed_file,omitempty"`
}

// BedPlots holds the visualization artifacts of a record.
type BedPlots struct {
	ChromBins            *FileDescriptor `mapstructure:"chrombins" json:"chrombins,omitempty" yaml:"chrombins,omitempty"`
	GCContent            *FileDescriptor `mapstructure:"gccontent" json:"gccontent,omitempty" yaml:"gccontent,omitempty"`
	Partitions           *FileDescriptor `mapstructure:"partitions" json:"partitions,omitempty" yaml:"partitions,omitempty"`
	ExpectedPartitions   *FileDescriptor `mapstructure:"expected_partitions" json:"expected_partitions,omitempty" yaml:"expected_partitions,omitempty"`
	CumulativePartitions *FileDescriptor `mapstructure:"cumulative_partitions" json:"cumulative_partitions,omitempty" yaml:"cumulative_partitions,omitempty"`
	WidthsHistogram      *FileDescriptor `mapstructure:"widths_histogram" json:"widths_histogram,omitempty" yaml:"widths_histogram,omitempty"`
	NeighborDistances    *FileDescriptor `mapstructure:"neighbor_distances" json:"neighbor_distances,omitempty" yaml:"neighbor_distances,omitempty"`
	OpenChromatin        *FileDescriptor `mapstructure:"open_chromatin" json:"open_chromatin,omitempty" yaml:"open_chromatin,omitempty"`
}

// descriptors lists the non-nil entries with their role names.
func (f *BedFiles) descriptors() map[string]*FileDescriptor {
	return collect(map[string]*FileDescriptor{
		"bed_file":    f.BedFile,
		"bigbed_file": f.BigBedFile,
	})
}

func (p *BedPlots) descriptors() map[string]*FileDescriptor {
	return collect(map[string]*FileDescriptor{
		"chrombins":             p.ChromBins,
		"gccontent":             p.GCContent,
		"partitions":            p.Partitions,
		"expected_partitions":   p.ExpectedPartitions,
		"cumulative_partitions": p.CumulativePartitions,
		"widths_histogram":      p.WidthsHistogram,
		"neighbor_distances":    p.NeighborDistances,
		"open_chromatin":        p.OpenChromatin,
	})
}

func collect(all map[string]*FileDescriptor) map[string]*FileDescriptor {
	out := make(map[string]*FileDescriptor)
	for name, d := range all {
		if !d.IsZero() {
			out[name] = d
		}
	}
	return out
}

// assign places a file row into the matching descriptor slot, false
// when the role name is unknown.
func (f *BedFiles) assign(name string, d *FileDescriptor) bool {
	switch name {
	case "bed_file":
		f.BedFile = d
	case "bigbed_file":
		f.BigBedFile = d
	default:
		return false
	}
	return true
}

func (p *BedPlots) assign(name string, d *FileDescriptor) bool {
	switch name {
	case "chrombins":
		p.ChromBins = d
	case "gccontent":
		p.GCContent = d
	case "partitions":
		p.Partitions = d
	case "expected_partitions":
		p.ExpectedPartitions = d
	case "cumulative_partitions":
		p.CumulativePartitions = d
	case "widths_histogram":
		p.WidthsHistogram = d
	case "neighbor_distances":
		p.NeighborDistances = d
	case "open_chromatin":
		p.OpenChromatin = d
	default:
		return false
	}
	return true
}

// BedMetadata is the aggregated read-model for one record. It is
// rebuilt on every read, never persisted.
type BedMetadata struct {
	ID             string                  `json:"id" yaml:"id"`
	Name           string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Description    string                  `json:"description,omitempty" yaml:"description,omitempty"`
	SubmissionDate time.Time               `json:"submission_date" yaml:"submission_date"`
	LastUpdateDate time.Time               `json:"last_update_date" yaml:"last_update_date"`
	Stats          store.BedStats          `json:"stats" yaml:"stats"`
	Classification store.BedClassification `json:"classification" yaml:"classification"`
	Files          BedFiles                `json:"files" yaml:"files"`
	Plots          BedPlots                `json:"plots" yaml:"plots"`

	// Raw is the external metadata document, nil when the service
	// is unavailable or holds no sample for this record.
	Raw map[string]any `json:"raw_metadata,omitempty" yaml:"raw_metadata,omitempty"`
}

// decodeStrict coerces a free-form map into its typed form, rejecting
// unknown keys.
func decodeStrict(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeRecordValidateInvalid, "building decoder")
	}
	if err := dec.Decode(input); err != nil {
		return errors.Wrap(err, errors.CodeRecordValidateInvalid, "coercing input")
	}
	return nil
}

// CoerceStats validates a raw statistics map.
func CoerceStats(input map[string]any) (store.BedStats, error) {
	var stats store.BedStats
	err := decodeStrict(input, &stats)
	return stats, err
}

// CoerceClassification validates a raw classification map.
func CoerceClassification(input map[string]any) (store.BedClassification, error) {
	var c store.BedClassification
	err := decodeStrict(input, &c)
	return c, err
}

// CoerceFiles validates a raw files map keyed by role name.
func CoerceFiles(input map[string]any) (BedFiles, error) {
	var f BedFiles
	err := decodeStrict(input, &f)
	return f, err
}

// CoercePlots validates a raw plots map keyed by plot name.
func CoercePlots(input map[string]any) (BedPlots, error) {
	var p BedPlots
	err := decodeStrict(input, &p)
	return p, err
}
