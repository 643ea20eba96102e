// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package vector

import (
	"context"
	"log/slog"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/bedbase-dev/bedbase/internal/config"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

var _ Index = (*QdrantIndex)(nil)

// QdrantIndex implements Index against a qdrant server over gRPC.
type QdrantIndex struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantIndex connects to the configured server and ensures the
// collection exists with a cosine distance metric at dimensions.
func NewQdrantIndex(ctx context.Context, cfg config.QdrantConfig, dimensions int) (*QdrantIndex, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeVectorIndexUnavailable,
			"creating vector index client", errors.Field("host", cfg.Host))
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.HealthCheck(healthCtx); err != nil {
		client.Close() //nolint:errcheck
		return nil, errors.Wrap(err, errors.CodeVectorIndexUnavailable,
			"reaching vector index", errors.Field("host", cfg.Host))
	}

	exists, err := client.CollectionExists(ctx, cfg.Collection)
	if err != nil {
		client.Close() //nolint:errcheck
		return nil, errors.Wrap(err, errors.CodeVectorIndexUnavailable,
			"checking collection", errors.Field("collection", cfg.Collection))
	}
	if !exists {
		err := client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: cfg.Collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(dimensions),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			client.Close() //nolint:errcheck
			return nil, errors.Wrap(err, errors.CodeVectorIndexUnavailable,
				"creating collection", errors.Field("collection", cfg.Collection))
		}
		slog.Info("created vector collection", "collection", cfg.Collection, "dimensions", dimensions)
	}

	return &QdrantIndex{client: client, collection: cfg.Collection}, nil
}

func (q *QdrantIndex) Upsert(ctx context.Context, id string, embedding []float32, payload map[string]string) error {
	fields := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		fields[k] = v
	}
	fields["id"] = id

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(PointID(id)),
				Vectors: qdrant.NewVectors(embedding...),
				Payload: qdrant.NewValueMap(fields),
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeVectorUpsertFailure,
			"upserting point", errors.FieldBedID(id))
	}
	return nil
}

func (q *QdrantIndex) Nearest(ctx context.Context, query []float32, limit, offset uint64) ([]Hit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          qdrant.PtrOf(limit),
		Offset:         qdrant.PtrOf(offset),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeVectorQueryFailure, "querying points")
	}

	hits := make([]Hit, 0, len(points))
	for _, p := range points {
		hit := Hit{Score: p.Score, Payload: make(map[string]string)}
		for k, v := range p.Payload {
			if s := v.GetStringValue(); s != "" {
				hit.Payload[k] = s
			}
		}
		if id, ok := hit.Payload["id"]; ok {
			hit.ID = id
		} else {
			hit.ID = RegistryID(p.Id.GetUuid())
		}
		delete(hit.Payload, "id")
		hits = append(hits, hit)
	}
	return hits, nil
}

func (q *QdrantIndex) Remove(ctx context.Context, id string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collection,
		Points:         qdrant.NewPointsSelector(qdrant.NewIDUUID(PointID(id))),
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeVectorUpsertFailure,
			"removing point", errors.FieldBedID(id))
	}
	return nil
}

func (q *QdrantIndex) Close() error {
	return q.client.Close()
}
