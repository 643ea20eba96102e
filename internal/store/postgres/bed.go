// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bedbase-dev/bedbase/internal/store"
)

// Compile-time interface check.
var _ store.RecordStore = (*RecordStore)(nil)

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

// RecordStore implements store.RecordStore backed by Postgres via the
// pgx stdlib driver.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore opens a connection pool against dsn and ensures the
// bed and files tables exist.
func NewRecordStore(dsn string) (*RecordStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening bed db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging bed db: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating bed db: %w", err)
	}

	return &RecordStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS bed (
	id                      text PRIMARY KEY,
	name                    text NOT NULL DEFAULT '',
	description             text NOT NULL DEFAULT '',
	submission_date         timestamptz NOT NULL,
	last_update_date        timestamptz NOT NULL,
	number_of_regions       double precision,
	gc_content              double precision,
	median_tss_dist         double precision,
	mean_region_width       double precision,
	exon_frequency          double precision,
	exon_percentage         double precision,
	intron_frequency        double precision,
	intron_percentage       double precision,
	intergenic_frequency    double precision,
	intergenic_percentage   double precision,
	promotercore_frequency  double precision,
	promotercore_percentage double precision,
	promoterprox_frequency  double precision,
	promoterprox_percentage double precision,
	fiveutr_frequency       double precision,
	fiveutr_percentage      double precision,
	threeutr_frequency      double precision,
	threeutr_percentage     double precision,
	bed_format              text NOT NULL DEFAULT '',
	bed_type                text NOT NULL DEFAULT '',
	genome_alias            text NOT NULL DEFAULT '',
	genome_digest           text NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS files (
	name           text NOT NULL,
	path           text NOT NULL DEFAULT '',
	path_thumbnail text NOT NULL DEFAULT '',
	description    text NOT NULL DEFAULT '',
	size           bigint,
	type           text NOT NULL DEFAULT 'file',
	bedfile_id     text NOT NULL REFERENCES bed(id) ON DELETE CASCADE,
	PRIMARY KEY (bedfile_id, name)
);

CREATE INDEX IF NOT EXISTS idx_files_bedfile ON files(bedfile_id);
CREATE INDEX IF NOT EXISTS idx_bed_genome_alias ON bed(genome_alias);
`
	_, err := db.Exec(ddl)
	return err
}

// bedColumns is the scan/insert order for the bed table.
const bedColumns = `id, name, description, submission_date, last_update_date,
number_of_regions, gc_content, median_tss_dist, mean_region_width,
exon_frequency, exon_percentage, intron_frequency, intron_percentage,
intergenic_frequency, intergenic_percentage,
promotercore_frequency, promotercore_percentage,
promoterprox_frequency, promoterprox_percentage,
fiveutr_frequency, fiveutr_percentage, threeutr_frequency, threeutr_percentage,
bed_format, bed_type, genome_alias, genome_digest`

func bedArgs(b *store.BedRow) []any {
	return []any{
		b.ID, b.Name, b.Description, b.SubmissionDate, b.LastUpdateDate,
		b.Stats.NumberOfRegions, b.Stats.GCContent, b.Stats.MedianTSSDist, b.Stats.MeanRegionWidth,
		b.Stats.ExonFrequency, b.Stats.ExonPercentage, b.Stats.IntronFrequency, b.Stats.IntronPercentage,
		b.Stats.IntergenicFrequency, b.Stats.IntergenicPercentage,
		b.Stats.PromoterCoreFreq, b.Stats.PromoterCorePct,
		b.Stats.PromoterProxFreq, b.Stats.PromoterProxPct,
		b.Stats.FiveUTRFrequency, b.Stats.FiveUTRPercentage,
		b.Stats.ThreeUTRFrequency, b.Stats.ThreeUTRPercentage,
		b.Classification.BedFormat, b.Classification.BedType,
		b.Classification.GenomeAlias, b.Classification.GenomeDigest,
	}
}

func scanBed(row *sql.Row) (*store.BedRow, error) {
	var b store.BedRow
	err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.SubmissionDate, &b.LastUpdateDate,
		&b.Stats.NumberOfRegions, &b.Stats.GCContent, &b.Stats.MedianTSSDist, &b.Stats.MeanRegionWidth,
		&b.Stats.ExonFrequency, &b.Stats.ExonPercentage, &b.Stats.IntronFrequency, &b.Stats.IntronPercentage,
		&b.Stats.IntergenicFrequency, &b.Stats.IntergenicPercentage,
		&b.Stats.PromoterCoreFreq, &b.Stats.PromoterCorePct,
		&b.Stats.PromoterProxFreq, &b.Stats.PromoterProxPct,
		&b.Stats.FiveUTRFrequency, &b.Stats.FiveUTRPercentage,
		&b.Stats.ThreeUTRFrequency, &b.Stats.ThreeUTRPercentage,
		&b.Classification.BedFormat, &b.Classification.BedType,
		&b.Classification.GenomeAlias, &b.Classification.GenomeDigest,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *RecordStore) Create(ctx context.Context, bed *store.BedRow, files []store.FileRow, overwrite bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx for bed %s: %w", bed.ID, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if overwrite {
		// Replacing the row drops its file rows via ON DELETE CASCADE.
		if _, err := tx.ExecContext(ctx, `DELETE FROM bed WHERE id = $1`, bed.ID); err != nil {
			return fmt.Errorf("replacing bed %s: %w", bed.ID, err)
		}
	}

	insert := fmt.Sprintf(`INSERT INTO bed (%s) VALUES (%s)`, bedColumns, placeholders(27))
	if _, err := tx.ExecContext(ctx, insert, bedArgs(bed)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("bed %s: %w", bed.ID, store.ErrConflict)
		}
		return fmt.Errorf("inserting bed %s: %w", bed.ID, err)
	}

	const insertFile = `INSERT INTO files (name, path, path_thumbnail, description, size, type, bedfile_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, f := range files {
		if _, err := tx.ExecContext(ctx, insertFile,
			f.Name, f.Path, f.PathThumbnail, f.Description, f.Size, string(f.Type), bed.ID,
		); err != nil {
			return fmt.Errorf("inserting file %s for bed %s: %w", f.Name, bed.ID, err)
		}
	}

	return tx.Commit()
}

func (s *RecordStore) Get(ctx context.Context, id string) (*store.BedRow, error) {
	q := fmt.Sprintf(`SELECT %s FROM bed WHERE id = $1`, bedColumns)

	b, err := scanBed(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bed %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting bed %s: %w", id, err)
	}
	return b, nil
}

func (s *RecordStore) Files(ctx context.Context, id string) ([]store.FileRow, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bed WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking bed %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("bed %s: %w", id, store.ErrNotFound)
	}

	return s.loadFiles(ctx, id)
}

func (s *RecordStore) loadFiles(ctx context.Context, id string) ([]store.FileRow, error) {
	const q = `SELECT name, path, path_thumbnail, description, size, type, bedfile_id
FROM files WHERE bedfile_id = $1 ORDER BY name`

	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("loading files for bed %s: %w", id, err)
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	var files []store.FileRow
	for rows.Next() {
		var f store.FileRow
		var typ string
		if err := rows.Scan(&f.Name, &f.Path, &f.PathThumbnail, &f.Description, &f.Size, &typ, &f.BedID); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		f.Type = store.FileType(typ)
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file rows: %w", err)
	}
	return files, nil
}

func (s *RecordStore) Delete(ctx context.Context, id string) ([]store.FileRow, error) {
	files, err := s.Files(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM bed WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("deleting bed %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows for bed %s: %w", id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("bed %s: %w", id, store.ErrNotFound)
	}

	return files, nil
}

func (s *RecordStore) Summary(ctx context.Context) (*store.CatalogSummary, error) {
	const q = `SELECT
	(SELECT count(*) FROM bed),
	(SELECT count(*) FROM files),
	(SELECT count(DISTINCT genome_alias) FROM bed WHERE genome_alias <> '')`

	var sum store.CatalogSummary
	if err := s.db.QueryRowContext(ctx, q).Scan(&sum.BedCount, &sum.FileCount, &sum.GenomeCount); err != nil {
		return nil, fmt.Errorf("counting catalog: %w", err)
	}
	return &sum, nil
}

// Close closes the underlying connection pool.
func (s *RecordStore) Close() error { return s.db.Close() }

// placeholders renders "$1, $2, ..., $n".
func placeholders(n int) string {
	out := make([]byte, 0, n*4)
	for i := 1; i <= n; i++ {
		if i > 1 {
			out = append(out, ", "...)
		}
		out = append(out, fmt.Sprintf("$%d", i)...)
	}
	return string(out)
}
