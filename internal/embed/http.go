// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

var (
	_ TextEncoder   = (*HTTPEncoder)(nil)
	_ RegionEncoder = (*HTTPEncoder)(nil)
)

// HTTPEncoder calls an embedding service speaking the common
// POST /embeddings protocol: {"model": ..., "input": [...]} in,
// {"data": [{"embedding": [...]}]} out.
type HTTPEncoder struct {
	httpClient *http.Client
	endpoint   string
	model      string
}

// NewHTTPEncoder targets endpoint with the given model identifier.
// A nil httpClient gets a 30 second default.
func NewHTTPEncoder(endpoint, model string, httpClient *http.Client) *HTTPEncoder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPEncoder{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(endpoint, "/"),
		model:      model,
	}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func (e *HTTPEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.CodeEmbedInputInvalid, "empty query text")
	}

	vectors, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *HTTPEncoder) EncodeRegions(ctx context.Context, regions []Region) ([][]float32, error) {
	if len(regions) == 0 {
		return nil, errors.New(errors.CodeEmbedInputInvalid, "empty region set")
	}

	inputs := make([]string, len(regions))
	for i, r := range regions {
		inputs[i] = r.String()
	}
	return e.embed(ctx, inputs)
}

func (e *HTTPEncoder) embed(ctx context.Context, inputs []string) ([][]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: inputs})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbedEncodeFailure, "encoding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbedEncodeFailure, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, errors.CodeEmbedModelUnavailable,
			"reaching embedding service", errors.Field("endpoint", e.endpoint))
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbedEncodeFailure, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf(errors.CodeEmbedEncodeFailure,
			"embedding service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbedEncodeFailure, "decoding response")
	}
	if len(parsed.Data) != len(inputs) {
		return nil, errors.Errorf(errors.CodeEmbedEncodeFailure,
			"expected %d embeddings, got %d", len(inputs), len(parsed.Data))
	}

	vectors := make([][]float32, len(parsed.Data))
	for _, d := range parsed.Data {
		if len(d.Embedding) == 0 {
			return nil, errors.New(errors.CodeEmbedEncodeFailure, "empty embedding in response")
		}
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, errors.Errorf(errors.CodeEmbedEncodeFailure, "embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, errors.Errorf(errors.CodeEmbedEncodeFailure, "missing embedding for input %d", i)
		}
	}
	return vectors, nil
}
