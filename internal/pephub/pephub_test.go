// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package pephub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbase-dev/bedbase/internal/config"
	"github.com/bedbase-dev/bedbase/pkg/errors"
)

func testConfig(baseURL string) config.MetadataConfig {
	return config.MetadataConfig{
		BaseURL:   baseURL,
		Namespace: "databio",
		Name:      "bedbase",
		Tag:       "default",
	}
}

func TestGetSample(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/projects/databio/bedbase/samples/abc123", r.URL.Path)
		assert.Equal(t, "default", r.URL.Query().Get("tag"))

		_, _ = w.Write([]byte(`{"sample_name": "abc123", "genome": "hg38"}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())
	metadata, err := c.GetSample(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "hg38", metadata["genome"])
}

func TestGetSample_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "sample not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())
	_, err := c.GetSample(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestGetSample_Unreachable(t *testing.T) {
	c := NewClient(testConfig("http://127.0.0.1:1"), nil)
	_, err := c.GetSample(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestCreateSample(t *testing.T) {
	var gotBody map[string]any
	var gotOverwrite string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/projects/databio/bedbase/samples/abc123", r.URL.Path)
		gotOverwrite = r.URL.Query().Get("overwrite")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())
	err := c.CreateSample(context.Background(), "abc123", map[string]any{"genome": "hg38"}, true)
	require.NoError(t, err)
	assert.Equal(t, "true", gotOverwrite)
	assert.Equal(t, "hg38", gotBody["genome"])
}

func TestCreateSample_ServerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "sample exists", http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())
	err := c.CreateSample(context.Background(), "abc123", nil, false)
	require.Error(t, err)
	assert.Equal(t, errors.CodeMetadataPublishFailure, errors.CodeOf(err))
}

func TestNewClient_DefaultsSchemeToHTTPS(t *testing.T) {
	c := NewClient(config.MetadataConfig{BaseURL: "pephub.databio.org", Namespace: "ns", Name: "n", Tag: "t"}, nil)
	assert.Equal(t, "https://pephub.databio.org", c.baseURL)
}
