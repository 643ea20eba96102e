// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package catalog

import (
	"context"
	"log/slog"

	"github.com/bedbase-dev/bedbase/internal/config"
	"github.com/bedbase-dev/bedbase/internal/embed"
	"github.com/bedbase-dev/bedbase/internal/objstore"
	"github.com/bedbase-dev/bedbase/internal/pephub"
	"github.com/bedbase-dev/bedbase/internal/store"
	"github.com/bedbase-dev/bedbase/internal/vector"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// Context holds the long-lived client handles for every backing
// store. The relational store is required; each of the others may be
// nil after a failed construction, leaving the context serving the
// stores that are healthy.
type Context struct {
	cfg *config.Config

	records  store.RecordStore
	objects  objstore.Store
	vectors  vector.Index
	metadata pephub.SampleClient

	textEncoder   embed.TextEncoder
	regionEncoder embed.RegionEncoder
}

// NewContext connects every configured backing store. A relational
// store failure is fatal; any other client failing to construct is
// logged as a warning and its handle left nil.
func NewContext(ctx context.Context, cfg *config.Config) (*Context, error) {
	records, err := store.New(cfg.Storage.Backend, cfg.Database.DSN())
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStoreDatabaseFailure,
			"opening record store", errors.FieldBackend(cfg.Storage.Backend))
	}

	c := &Context{cfg: cfg, records: records}

	if objects, err := objstore.NewMinioStore(ctx, cfg.S3); err != nil {
		slog.Warn("object store unavailable", "endpoint", cfg.S3.Endpoint, "error", err)
	} else {
		c.objects = objects
	}

	if vectors, err := vector.NewQdrantIndex(ctx, cfg.Qdrant, cfg.Embedding.Dimensions); err != nil {
		slog.Warn("vector index unavailable", "host", cfg.Qdrant.Host, "error", err)
	} else {
		c.vectors = vectors
	}

	if cfg.Metadata.BaseURL == "" {
		slog.Warn("metadata service not configured")
	} else {
		c.metadata = pephub.NewClient(cfg.Metadata, nil)
	}

	if cfg.Embedding.Endpoint == "" {
		slog.Warn("embedding service not configured")
	} else {
		c.textEncoder = embed.NewHTTPEncoder(cfg.Embedding.Endpoint, cfg.Embedding.TextModel, nil)
		c.regionEncoder = embed.NewHTTPEncoder(cfg.Embedding.Endpoint, cfg.Embedding.RegionModel, nil)
	}

	return c, nil
}

// Config returns the parsed configuration.
func (c *Context) Config() *config.Config { return c.cfg }

// Records returns the relational store handle. Never nil on a
// constructed context.
func (c *Context) Records() store.RecordStore { return c.records }

// Objects returns the object store handle, nil when unavailable.
func (c *Context) Objects() objstore.Store { return c.objects }

// Vectors returns the vector index handle, nil when unavailable.
func (c *Context) Vectors() vector.Index { return c.vectors }

// Metadata returns the sample metadata client, nil when unavailable.
func (c *Context) Metadata() pephub.SampleClient { return c.metadata }

// TextEncoder returns the query embedding model, nil when unavailable.
func (c *Context) TextEncoder() embed.TextEncoder { return c.textEncoder }

// RegionEncoder returns the region embedding model, nil when
// unavailable.
func (c *Context) RegionEncoder() embed.RegionEncoder { return c.regionEncoder }

// Status reports which handles are live.
type Status struct {
	Backend     string `json:"backend" yaml:"backend"`
	Relational  bool   `json:"relational" yaml:"relational"`
	ObjectStore bool   `json:"object_store" yaml:"object_store"`
	VectorIndex bool   `json:"vector_index" yaml:"vector_index"`
	Metadata    bool   `json:"metadata" yaml:"metadata"`
	Embedding   bool   `json:"embedding" yaml:"embedding"`
}

func (c *Context) Status() Status {
	return Status{
		Backend:     c.cfg.Storage.Backend,
		Relational:  c.records != nil,
		ObjectStore: c.objects != nil,
		VectorIndex: c.vectors != nil,
		Metadata:    c.metadata != nil,
		Embedding:   c.textEncoder != nil && c.regionEncoder != nil,
	}
}

// Close releases every network resource the context holds.
func (c *Context) Close() error {
	var firstErr error
	if c.vectors != nil {
		if err := c.vectors.Close(); err != nil {
			firstErr = err
		}
	}
	if c.records != nil {
		if err := c.records.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
