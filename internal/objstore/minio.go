// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package objstore

import (
	"context"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bedbase-dev/bedbase/internal/config"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

var _ Store = (*MinioStore)(nil)

// MinioStore implements Store against any S3-compatible endpoint.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore builds a client for the configured endpoint and
// verifies the bucket is reachable.
func NewMinioStore(ctx context.Context, cfg config.S3Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeObjectStoreUnavailable,
			"creating object store client", errors.Field("endpoint", cfg.Endpoint))
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeObjectStoreUnavailable,
			"reaching object store", errors.Field("endpoint", cfg.Endpoint))
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, errors.Wrap(err, errors.CodeObjectStoreUnavailable,
				"creating bucket", errors.Field("bucket", cfg.Bucket))
		}
		slog.Info("created object store bucket", "bucket", cfg.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Upload(ctx context.Context, localPath, key string) (int64, error) {
	info, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{})
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeObjectUploadFailure,
			"uploading object", errors.Field("key", key))
	}

	slog.Debug("uploaded object", "key", key, "size", info.Size)
	return info.Size, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil
		}
		return errors.Wrap(err, errors.CodeObjectDeleteFailure,
			"deleting object", errors.Field("key", key))
	}
	return nil
}

func (s *MinioStore) Stat(ctx context.Context, key string) (int64, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeObjectStoreUnavailable,
			"statting object", errors.Field("key", key))
	}
	return info.Size, nil
}
