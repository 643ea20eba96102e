// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbase-dev/bedbase/internal/config"
	_ "github.com/bedbase-dev/bedbase/internal/store/memory"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// degradedConfig points every optional store at a closed local port
// so only the in-memory relational backend comes up.
func degradedConfig() *config.Config {
	return &config.Config{
		Storage:   config.StorageConfig{Backend: "memory"},
		S3:        config.S3Config{Endpoint: "127.0.0.1:1", Bucket: "bedbase"},
		Qdrant:    config.QdrantConfig{Host: "127.0.0.1", Port: 1, Collection: "bedbase"},
		Embedding: config.EmbeddingConfig{Dimensions: 100},
	}
}

func TestNewContext_DegradedStartup(t *testing.T) {
	c, err := NewContext(context.Background(), degradedConfig())
	require.NoError(t, err, "unreachable optional stores must not fail construction")
	defer c.Close() //nolint:errcheck

	assert.NotNil(t, c.Records())
	assert.Nil(t, c.Objects())
	assert.Nil(t, c.Vectors())
	assert.Nil(t, c.Metadata(), "no base URL configured")
	assert.Nil(t, c.TextEncoder(), "no endpoint configured")

	status := c.Status()
	assert.True(t, status.Relational)
	assert.False(t, status.ObjectStore)
	assert.False(t, status.VectorIndex)
	assert.False(t, status.Metadata)
	assert.False(t, status.Embedding)
}

func TestNewContext_DegradedEmbeddingUploadFails(t *testing.T) {
	c, err := NewContext(context.Background(), degradedConfig())
	require.NoError(t, err)
	defer c.Close() //nolint:errcheck

	m := NewManager(c)
	err = m.IndexRegions(context.Background(), "abc123", "/tmp/x.bed", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestNewContext_UnknownBackendIsFatal(t *testing.T) {
	cfg := degradedConfig()
	cfg.Storage.Backend = "dynamo"

	_, err := NewContext(context.Background(), cfg)
	require.Error(t, err)
}

func TestStatus_FullyAssembled(t *testing.T) {
	c := newTestContext()
	status := c.Status()

	assert.Equal(t, "memory", status.Backend)
	assert.True(t, status.Relational)
	assert.True(t, status.ObjectStore)
	assert.True(t, status.VectorIndex)
	assert.True(t, status.Metadata)
	assert.True(t, status.Embedding)
}
