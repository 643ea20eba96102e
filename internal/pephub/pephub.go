// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

// Package pephub publishes and fetches per-record sample metadata on
// an external PEPhub-compatible service. Every record lives as one
// sample in a single configured project.
package pephub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bedbase-dev/bedbase/internal/config"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// SampleClient reads and writes sample metadata keyed by record
// identifier.
type SampleClient interface {
	// GetSample fetches the raw metadata document for sampleName.
	GetSample(ctx context.Context, sampleName string) (map[string]any, error)

	// CreateSample publishes metadata under sampleName. With
	// overwrite, an existing sample is replaced.
	CreateSample(ctx context.Context, sampleName string, metadata map[string]any, overwrite bool) error
}

var _ SampleClient = (*Client)(nil)

// Client is the HTTP SampleClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	namespace  string
	name       string
	tag        string
}

// NewClient targets the configured project. A nil httpClient gets a
// 30 second default.
func NewClient(cfg config.MetadataConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	base := cfg.BaseURL
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(base, "/"),
		namespace:  cfg.Namespace,
		name:       cfg.Name,
		tag:        cfg.Tag,
	}
}

// sampleURL renders /api/v1/projects/{namespace}/{name}/samples/{sample}?tag=...
func (c *Client) sampleURL(sampleName string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("tag", c.tag)
	return fmt.Sprintf("%s/api/v1/projects/%s/%s/samples/%s?%s",
		c.baseURL,
		url.PathEscape(c.namespace), url.PathEscape(c.name), url.PathEscape(sampleName),
		query.Encode())
}

func (c *Client) GetSample(ctx context.Context, sampleName string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sampleURL(sampleName, nil), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeMetadataFetchFailure, "building sample request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, errors.CodeMetadataUnavailable,
			"reaching metadata service", errors.Field("base_url", c.baseURL))
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeMetadataFetchFailure, "reading sample response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Errorf(errors.CodeMetadataSampleNotFound, "no sample %q", sampleName)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Errorf(errors.CodeMetadataFetchFailure,
			"metadata service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var metadata map[string]any
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, errors.Wrap(err, errors.CodeMetadataFetchFailure, "decoding sample")
	}
	return metadata, nil
}

func (c *Client) CreateSample(ctx context.Context, sampleName string, metadata map[string]any, overwrite bool) error {
	body, err := json.Marshal(metadata)
	if err != nil {
		return errors.Wrap(err, errors.CodeMetadataPublishFailure, "encoding sample")
	}

	query := url.Values{}
	if overwrite {
		query.Set("overwrite", "true")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sampleURL(sampleName, query), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, errors.CodeMetadataPublishFailure, "building sample request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(err, errors.CodeMetadataUnavailable,
			"reaching metadata service", errors.Field("base_url", c.baseURL))
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf(errors.CodeMetadataPublishFailure,
			"metadata service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
