// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bedbase-dev/bedbase/internal/embed"
	"github.com/bedbase-dev/bedbase/internal/store"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// Manager is the per-record orchestrator. Writes run each backing
// store in a fixed order with the relational commit last; reads join
// the relational rows with the best-effort metadata document.
type Manager struct {
	ctx   *Context
	sync  *AssetSync
	clock func() time.Time
}

// NewManager builds a manager over the context's handles.
func NewManager(c *Context) *Manager {
	return &Manager{
		ctx:   c,
		sync:  NewAssetSync(c.Objects()),
		clock: time.Now,
	}
}

// AddRequest carries one record write. The raw maps are coerced into
// their typed forms before anything is persisted.
type AddRequest struct {
	ID          string
	Name        string
	Description string

	Stats          map[string]any
	Classification map[string]any
	Files          map[string]any
	Plots          map[string]any

	// Metadata is published to the external service and used as the
	// vector payload snapshot.
	Metadata map[string]any

	// LocalPath is the pipeline output directory that relative
	// descriptor paths resolve against.
	LocalPath string

	Overwrite bool

	// UploadObjects syncs files and plots to the object store and is
	// the precondition for persisting file rows.
	UploadObjects bool

	// UploadVector embeds the primary bed file and upserts it into
	// the vector index.
	UploadVector bool

	// UploadMetadata publishes Metadata to the external service.
	UploadMetadata bool
}

// Add validates the request, then writes metadata, embedding and
// assets as requested, and commits the relational rows last. A step
// failure surfaces immediately; side effects of completed earlier
// steps stay in place and are overwritten by a retried Add.
func (m *Manager) Add(ctx context.Context, req AddRequest) error {
	if req.ID == "" {
		return errors.New(errors.CodeRecordValidateInvalid, "empty record identifier")
	}

	stats, err := CoerceStats(req.Stats)
	if err != nil {
		return errors.With(err, errors.FieldBedID(req.ID))
	}
	classification, err := CoerceClassification(req.Classification)
	if err != nil {
		return errors.With(err, errors.FieldBedID(req.ID))
	}
	files, err := CoerceFiles(req.Files)
	if err != nil {
		return errors.With(err, errors.FieldBedID(req.ID))
	}
	plots, err := CoercePlots(req.Plots)
	if err != nil {
		return errors.With(err, errors.FieldBedID(req.ID))
	}

	if req.UploadMetadata {
		if m.ctx.Metadata() == nil {
			return errors.New(errors.CodeMetadataUnavailable, "no metadata service handle",
				errors.FieldBedID(req.ID))
		}
		if err := m.ctx.Metadata().CreateSample(ctx, req.ID, req.Metadata, req.Overwrite); err != nil {
			return err
		}
	}

	if req.UploadVector {
		if files.BedFile.IsZero() {
			return errors.New(errors.CodeEmbedInputInvalid, "no primary bed file to embed",
				errors.FieldBedID(req.ID))
		}
		bedPath := resolveLocal(req.LocalPath, files.BedFile.Path)
		if err := m.IndexRegions(ctx, req.ID, bedPath, nil, payloadFrom(req), nil); err != nil {
			return err
		}
	}

	if req.UploadObjects {
		if err := m.uploadAssets(ctx, req.ID, &files, &plots, req.LocalPath); err != nil {
			return err
		}
	}

	now := m.clock().UTC()
	row := &store.BedRow{
		ID:             req.ID,
		Name:           req.Name,
		Description:    req.Description,
		SubmissionDate: now,
		LastUpdateDate: now,
		Stats:          stats,
		Classification: classification,
	}

	// File rows exist only for synced assets; without the object
	// store step the descriptors still point at local paths.
	var rows []store.FileRow
	if req.UploadObjects {
		rows = append(fileRows(req.ID, files.descriptors(), store.FileTypeFile),
			fileRows(req.ID, plots.descriptors(), store.FileTypePlot)...)
	}

	if err := m.ctx.Records().Create(ctx, row, rows, req.Overwrite); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return errors.Wrap(err, errors.CodeStoreBedConflict,
				"record already exists", errors.FieldBedID(req.ID))
		}
		return errors.Wrap(err, errors.CodeStoreDatabaseFailure,
			"committing record", errors.FieldBedID(req.ID))
	}

	slog.Info("added bed record", "id", req.ID, "files", len(rows), "overwrite", req.Overwrite)
	return nil
}

func (m *Manager) uploadAssets(ctx context.Context, id string, files *BedFiles, plots *BedPlots, basePath string) error {
	batches := []struct {
		descriptors map[string]*FileDescriptor
		category    Category
	}{
		{files.descriptors(), CategoryFiles},
		{plots.descriptors(), CategoryPlots},
	}

	for _, b := range batches {
		for _, res := range m.sync.UploadMany(ctx, id, b.descriptors, basePath, b.category) {
			if res.Err != nil {
				return errors.With(res.Err, errors.FieldBedID(id), errors.Field("asset", res.Name))
			}
		}
	}
	return nil
}

func fileRows(bedID string, descriptors map[string]*FileDescriptor, typ store.FileType) []store.FileRow {
	rows := make([]store.FileRow, 0, len(descriptors))
	for name, d := range descriptors {
		rows = append(rows, store.FileRow{
			Name:          name,
			Path:          d.Path,
			PathThumbnail: d.PathThumbnail,
			Description:   d.Description,
			Size:          d.Size,
			Type:          typ,
			BedID:         bedID,
		})
	}
	return rows
}

func payloadFrom(req AddRequest) map[string]string {
	payload := make(map[string]string)
	for k, v := range req.Metadata {
		if s, ok := v.(string); ok {
			payload[k] = s
		}
	}
	if req.Name != "" {
		payload["name"] = req.Name
	}
	if genome, ok := req.Classification["genome_alias"].(string); ok && genome != "" {
		payload["genome"] = genome
	}
	return payload
}

// Get assembles the full view for id. File rows with unknown role
// names are logged and dropped; a metadata fetch failure degrades to
// a nil document.
func (m *Manager) Get(ctx context.Context, id string) (*BedMetadata, error) {
	row, err := m.getRow(ctx, id)
	if err != nil {
		return nil, err
	}

	fileRows, err := m.ctx.Records().Files(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStoreDatabaseFailure,
			"loading file rows", errors.FieldBedID(id))
	}

	view := &BedMetadata{
		ID:             row.ID,
		Name:           row.Name,
		Description:    row.Description,
		SubmissionDate: row.SubmissionDate,
		LastUpdateDate: row.LastUpdateDate,
		Stats:          row.Stats,
		Classification: row.Classification,
	}

	for _, fr := range fileRows {
		d := descriptorFrom(fr)
		var known bool
		switch fr.Type {
		case store.FileTypeFile:
			known = view.Files.assign(fr.Name, d)
		case store.FileTypePlot:
			known = view.Plots.assign(fr.Name, d)
		}
		if !known {
			slog.Warn("dropping file row with unknown role", "id", id, "name", fr.Name, "type", fr.Type)
		}
	}

	view.Raw = m.fetchMetadata(ctx, id)
	return view, nil
}

func (m *Manager) getRow(ctx context.Context, id string) (*store.BedRow, error) {
	row, err := m.ctx.Records().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Wrap(err, errors.CodeStoreBedNotFound,
				"no such record", errors.FieldBedID(id))
		}
		return nil, errors.Wrap(err, errors.CodeStoreDatabaseFailure,
			"loading record", errors.FieldBedID(id))
	}
	return row, nil
}

func (m *Manager) fetchMetadata(ctx context.Context, id string) map[string]any {
	if m.ctx.Metadata() == nil {
		return nil
	}
	metadata, err := m.ctx.Metadata().GetSample(ctx, id)
	if err != nil {
		slog.Debug("metadata fetch degraded to empty", "id", id, "error", err)
		return nil
	}
	return metadata
}

func descriptorFrom(fr store.FileRow) *FileDescriptor {
	return &FileDescriptor{
		Name:          fr.Name,
		Path:          fr.Path,
		PathThumbnail: fr.PathThumbnail,
		Description:   fr.Description,
		Size:          fr.Size,
	}
}

// Stats returns the statistics projection for id.
func (m *Manager) Stats(ctx context.Context, id string) (*store.BedStats, error) {
	row, err := m.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return &row.Stats, nil
}

// Classification returns the classification projection for id.
func (m *Manager) Classification(ctx context.Context, id string) (*store.BedClassification, error) {
	row, err := m.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return &row.Classification, nil
}

// Files returns the primary-artifact partition for id.
func (m *Manager) Files(ctx context.Context, id string) (*BedFiles, error) {
	view, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &view.Files, nil
}

// Plots returns the plot partition for id.
func (m *Manager) Plots(ctx context.Context, id string) (*BedPlots, error) {
	view, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &view.Plots, nil
}

// RawMetadata returns the external metadata document for id, nil when
// the service is unavailable or holds no sample.
func (m *Manager) RawMetadata(ctx context.Context, id string) (map[string]any, error) {
	if _, err := m.getRow(ctx, id); err != nil {
		return nil, err
	}
	return m.fetchMetadata(ctx, id), nil
}

// Objects returns every associated file keyed by role name,
// regardless of the files/plots partitioning.
func (m *Manager) Objects(ctx context.Context, id string) (map[string]*FileDescriptor, error) {
	rows, err := m.ctx.Records().Files(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Wrap(err, errors.CodeStoreBedNotFound,
				"no such record", errors.FieldBedID(id))
		}
		return nil, errors.Wrap(err, errors.CodeStoreDatabaseFailure,
			"loading file rows", errors.FieldBedID(id))
	}

	objects := make(map[string]*FileDescriptor, len(rows))
	for _, fr := range rows {
		objects[fr.Name] = descriptorFrom(fr)
	}
	return objects, nil
}

// Delete removes the relational rows first, then best-effort cleans
// the object store and vector index. Cleanup failures are logged, the
// record is already gone.
func (m *Manager) Delete(ctx context.Context, id string) error {
	rows, err := m.ctx.Records().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.Wrap(err, errors.CodeStoreBedNotFound,
				"no such record", errors.FieldBedID(id))
		}
		return errors.Wrap(err, errors.CodeStoreDatabaseFailure,
			"deleting record", errors.FieldBedID(id))
	}

	if m.ctx.Objects() != nil {
		descriptors := make(map[string]*FileDescriptor, len(rows))
		for _, fr := range rows {
			descriptors[fr.Name] = descriptorFrom(fr)
		}
		if err := m.sync.DeleteMany(ctx, descriptors); err != nil {
			slog.Warn("object cleanup incomplete", "id", id, "error", err)
		}
	} else if len(rows) > 0 {
		slog.Warn("object store unavailable, leaving objects behind", "id", id, "objects", len(rows))
	}

	if m.ctx.Vectors() != nil {
		if err := m.ctx.Vectors().Remove(ctx, id); err != nil {
			slog.Warn("vector cleanup failed", "id", id, "error", err)
		}
	}

	slog.Info("deleted bed record", "id", id, "files", len(rows))
	return nil
}

// IndexRegions embeds a region set and upserts it into the vector
// index keyed by id. Callers pass either the path of a BED file or an
// already-parsed region set, and may override the configured region
// model by passing a non-nil encoder.
func (m *Manager) IndexRegions(ctx context.Context, id, localPath string, regions []embed.Region, payload map[string]string, encoder embed.RegionEncoder) error {
	if m.ctx.Vectors() == nil {
		return errors.New(errors.CodeVectorIndexUnavailable, "no vector index handle",
			errors.FieldBedID(id))
	}
	if encoder == nil {
		encoder = m.ctx.RegionEncoder()
	}
	if encoder == nil {
		return errors.New(errors.CodeEmbedModelUnavailable, "no region embedding model",
			errors.FieldBedID(id))
	}
	if localPath == "" && len(regions) == 0 {
		return errors.New(errors.CodeEmbedInputInvalid,
			"need a bed file path or a parsed region set", errors.FieldBedID(id))
	}

	if len(regions) == 0 {
		var err error
		regions, err = embed.ParseBEDFile(localPath)
		if err != nil {
			return errors.With(err, errors.FieldBedID(id))
		}
	}

	vectors, err := encoder.EncodeRegions(ctx, regions)
	if err != nil {
		return errors.With(err, errors.FieldBedID(id))
	}
	mean, err := embed.MeanVector(vectors)
	if err != nil {
		return errors.With(err, errors.FieldBedID(id))
	}

	return m.ctx.Vectors().Upsert(ctx, id, mean, payload)
}

// Summary reports catalog-wide counts.
func (m *Manager) Summary(ctx context.Context) (*store.CatalogSummary, error) {
	sum, err := m.ctx.Records().Summary(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStoreDatabaseFailure, "summarizing catalog")
	}
	return sum, nil
}

// String renders a short description for logs.
func (m *Manager) String() string {
	return fmt.Sprintf("catalog.Manager(backend=%s)", m.ctx.Config().Storage.Backend)
}
