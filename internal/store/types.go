// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package store

import "time"

// FileType partitions file rows into primary data artifacts and plots.
type FileType string

const (
	FileTypeFile FileType = "file"
	FileTypePlot FileType = "plot"
)

// BedStats is the numeric summary block of a bed record. Fields are
// pointers so an absent statistic is distinguishable from zero.
type BedStats struct {
	NumberOfRegions      *float64 `mapstructure:"number_of_regions" json:"number_of_regions,omitempty" yaml:"number_of_regions,omitempty"`
	GCContent            *float64 `mapstructure:"gc_content" json:"gc_content,omitempty" yaml:"gc_content,omitempty"`
	MedianTSSDist        *float64 `mapstructure:"median_tss_dist" json:"median_tss_dist,omitempty" yaml:"median_tss_dist,omitempty"`
	MeanRegionWidth      *float64 `mapstructure:"mean_region_width" json:"mean_region_width,omitempty" yaml:"mean_region_width,omitempty"`
	ExonFrequency        *float64 `mapstructure:"exon_frequency" json:"exon_frequency,omitempty" yaml:"exon_frequency,omitempty"`
	ExonPercentage       *float64 `mapstructure:"exon_percentage" json:"exon_percentage,omitempty" yaml:"exon_percentage,omitempty"`
	IntronFrequency      *float64 `mapstructure:"intron_frequency" json:"intron_frequency,omitempty" yaml:"intron_frequency,omitempty"`
	IntronPercentage     *float64 `mapstructure:"intron_percentage" json:"intron_percentage,omitempty" yaml:"intron_percentage,omitempty"`
	IntergenicFrequency  *float64 `mapstructure:"intergenic_frequency" json:"intergenic_frequency,omitempty" yaml:"intergenic_frequency,omitempty"`
	IntergenicPercentage *float64 `mapstructure:"intergenic_percentage" json:"intergenic_percentage,omitempty" yaml:"intergenic_percentage,omitempty"`
	PromoterCoreFreq     *float64 `mapstructure:"promotercore_frequency" json:"promotercore_frequency,omitempty" yaml:"promotercore_frequency,omitempty"`
	PromoterCorePct      *float64 `mapstructure:"promotercore_percentage" json:"promotercore_percentage,omitempty" yaml:"promotercore_percentage,omitempty"`
	PromoterProxFreq     *float64 `mapstructure:"promoterprox_frequency" json:"promoterprox_frequency,omitempty" yaml:"promoterprox_frequency,omitempty"`
	PromoterProxPct      *float64 `mapstructure:"promoterprox_percentage" json:"promoterprox_percentage,omitempty" yaml:"promoterprox_percentage,omitempty"`
	FiveUTRFrequency     *float64 `mapstructure:"fiveutr_frequency" json:"fiveutr_frequency,omitempty" yaml:"fiveutr_frequency,omitempty"`
	FiveUTRPercentage    *float64 `mapstructure:"fiveutr_percentage" json:"fiveutr_percentage,omitempty" yaml:"fiveutr_percentage,omitempty"`
	ThreeUTRFrequency    *float64 `mapstructure:"threeutr_frequency" json:"threeutr_frequency,omitempty" yaml:"threeutr_frequency,omitempty"`
	ThreeUTRPercentage   *float64 `mapstructure:"threeutr_percentage" json:"threeutr_percentage,omitempty" yaml:"threeutr_percentage,omitempty"`
}

// BedClassification is the categorical block of a bed record.
type BedClassification struct {
	BedFormat    string `mapstructure:"bed_format" json:"bed_format,omitempty" yaml:"bed_format,omitempty"`
	BedType      string `mapstructure:"bed_type" json:"bed_type,omitempty" yaml:"bed_type,omitempty"`
	GenomeAlias  string `mapstructure:"genome_alias" json:"genome_alias,omitempty" yaml:"genome_alias,omitempty"`
	GenomeDigest string `mapstructure:"genome_digest" json:"genome_digest,omitempty" yaml:"genome_digest,omitempty"`
}

// BedRow is one relational row of the bed table. The identifier is
// caller-supplied and immutable once created.
type BedRow struct {
	ID             string
	Name           string
	Description    string
	SubmissionDate time.Time
	LastUpdateDate time.Time
	Stats          BedStats
	Classification BedClassification
}

// FileRow is one relational row of the files table. Path holds the
// remote object key once the asset has been synced; Size is populated
// only after a successful upload.
type FileRow struct {
	Name          string
	Path          string
	PathThumbnail string
	Description   string
	Size          *int64
	Type          FileType
	BedID         string
}

// CatalogSummary reports catalog-wide counts.
type CatalogSummary struct {
	BedCount    int64 `json:"bedfiles_number" yaml:"bedfiles_number"`
	FileCount   int64 `json:"files_number" yaml:"files_number"`
	GenomeCount int64 `json:"genomes_number" yaml:"genomes_number"`
}
