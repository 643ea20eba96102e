// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package catalog

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/bedbase-dev/bedbase/internal/objstore"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// Category selects the object key convention for a batch of assets.
type Category string

const (
	// CategoryFiles shards primary artifacts by the first two
	// identifier characters: bed_files/<id[0]>/<id[1]>/<basename>.
	CategoryFiles Category = "files"

	// CategoryBedsets shards bedset artifacts the same way under
	// the bedsets/ prefix.
	CategoryBedsets Category = "bedsets"

	// CategoryPlots groups plots per record: stats/<id>/<basename>.
	CategoryPlots Category = "plots"
)

// RemoteKey derives the object key for localPath under the given
// convention. The shard prefix spreads keys by identifier, it is not
// a content hash.
func RemoteKey(category Category, baseID, localPath string) (string, error) {
	base := filepath.Base(localPath)
	switch category {
	case CategoryFiles, CategoryBedsets:
		if len(baseID) < 2 {
			return "", errors.Errorf(errors.CodeAssetCategoryInvalid,
				"identifier %q too short for sharded key", baseID)
		}
		folder := "bed_files"
		if category == CategoryBedsets {
			folder = "bedsets"
		}
		return path.Join(folder, string(baseID[0]), string(baseID[1]), base), nil
	case CategoryPlots:
		return path.Join("stats", baseID, base), nil
	default:
		return "", errors.Errorf(errors.CodeAssetCategoryInvalid, "unknown asset category %q", category)
	}
}

// AssetSync copies described local files into the object store and
// rewrites their descriptors to the remote location.
type AssetSync struct {
	objects objstore.Store
}

// NewAssetSync wraps the object store handle, which may be nil when
// the store is unavailable.
func NewAssetSync(objects objstore.Store) *AssetSync {
	return &AssetSync{objects: objects}
}

// UploadOne copies the file at localPath to key and returns the
// uploaded byte count.
func (s *AssetSync) UploadOne(ctx context.Context, localPath, key string) (int64, error) {
	if s.objects == nil {
		return 0, errors.New(errors.CodeObjectStoreUnavailable, "no object store handle")
	}
	if _, err := os.Stat(localPath); err != nil {
		return 0, errors.Wrap(err, errors.CodeAssetSourceMissing,
			"upload source not on disk", errors.Field("path", localPath))
	}
	return s.objects.Upload(ctx, localPath, key)
}

// UploadResult reports the outcome of syncing one descriptor.
type UploadResult struct {
	Name string
	Key  string
	Err  error
}

// UploadMany syncs every non-empty descriptor under the category's
// key convention, uploading the thumbnail alongside when present.
// Descriptor paths that are relative resolve against basePath, the
// pipeline output directory. A descriptor whose upload succeeds is
// rewritten in place; one that fails is left untouched and reported
// in its result, without stopping the rest of the batch.
func (s *AssetSync) UploadMany(ctx context.Context, baseID string, descriptors map[string]*FileDescriptor, basePath string, category Category) []UploadResult {
	results := make([]UploadResult, 0, len(descriptors))
	for name, d := range descriptors {
		if d.IsZero() {
			continue
		}
		results = append(results, s.uploadDescriptor(ctx, baseID, name, d, basePath, category))
	}
	return results
}

// resolveLocal joins a relative descriptor path onto the pipeline
// output directory. Absolute paths pass through untouched.
func resolveLocal(basePath, localPath string) string {
	if basePath == "" || filepath.IsAbs(localPath) {
		return localPath
	}
	return filepath.Join(basePath, localPath)
}

func (s *AssetSync) uploadDescriptor(ctx context.Context, baseID, name string, d *FileDescriptor, basePath string, category Category) UploadResult {
	key, err := RemoteKey(category, baseID, d.Path)
	if err != nil {
		return UploadResult{Name: name, Err: err}
	}

	size, err := s.UploadOne(ctx, resolveLocal(basePath, d.Path), key)
	if err != nil {
		return UploadResult{Name: name, Key: key, Err: err}
	}

	var thumbKey string
	if d.PathThumbnail != "" {
		thumbKey, err = RemoteKey(category, baseID, d.PathThumbnail)
		if err == nil {
			_, err = s.UploadOne(ctx, resolveLocal(basePath, d.PathThumbnail), thumbKey)
		}
		if err != nil {
			return UploadResult{Name: name, Key: key, Err: err}
		}
	}

	d.MarkUploaded(key, thumbKey, size)
	slog.Debug("synced asset", "name", name, "key", key, "size", size)
	return UploadResult{Name: name, Key: key}
}

// DeleteOne removes the object at key.
func (s *AssetSync) DeleteOne(ctx context.Context, key string) error {
	if s.objects == nil {
		return errors.New(errors.CodeObjectStoreUnavailable, "no object store handle")
	}
	return s.objects.Delete(ctx, key)
}

// DeleteMany removes every descriptor's object and thumbnail. A
// failed deletion is logged and does not stop the rest.
func (s *AssetSync) DeleteMany(ctx context.Context, descriptors map[string]*FileDescriptor) error {
	if s.objects == nil {
		return errors.New(errors.CodeObjectStoreUnavailable, "no object store handle")
	}

	for name, d := range descriptors {
		if d.IsZero() {
			continue
		}
		if err := s.objects.Delete(ctx, d.Path); err != nil {
			slog.Warn("asset deletion failed", "name", name, "key", d.Path, "error", err)
		}
		if d.PathThumbnail != "" {
			if err := s.objects.Delete(ctx, d.PathThumbnail); err != nil {
				slog.Warn("thumbnail deletion failed", "name", name, "key", d.PathThumbnail, "error", err)
			}
		}
	}
	return nil
}
