// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

func TestParseBED(t *testing.T) {
	const input = `# a comment
track name="peaks"
browser position chr1
chr1	0	100	peak1	930
chr2	500	750

chrX	10	10
`
	regions, err := ParseBED(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, regions, 3)
	assert.Equal(t, Region{Chrom: "chr1", Start: 0, End: 100}, regions[0])
	assert.Equal(t, Region{Chrom: "chr2", Start: 500, End: 750}, regions[1])
	assert.Equal(t, Region{Chrom: "chrX", Start: 10, End: 10}, regions[2])
}

func TestParseBED_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few columns", "chr1\t100\n"},
		{"non-numeric start", "chr1\tzero\t100\n"},
		{"non-numeric end", "chr1\t0\thundred\n"},
		{"end before start", "chr1\t100\t50\n"},
		{"no regions at all", "# only comments\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBED(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))
		})
	}
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "chr1:0-100", Region{Chrom: "chr1", Start: 0, End: 100}.String())
}

func TestMeanVector(t *testing.T) {
	mean, err := MeanVector([][]float32{
		{1, 2, 3},
		{3, 4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 4}, mean)
}

func TestMeanVector_SingleVectorIsIdentity(t *testing.T) {
	v := []float32{0.25, -1, 4}
	mean, err := MeanVector([][]float32{v})
	require.NoError(t, err)
	assert.Equal(t, v, mean)
}

func TestMeanVector_Invalid(t *testing.T) {
	_, err := MeanVector(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = MeanVector([][]float32{{1, 2}, {1}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

// fakeEmbedService answers the embeddings protocol with deterministic
// vectors derived from input order.
func fakeEmbedService(t *testing.T, wantModel string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/embeddings", r.URL.Path)

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, wantModel, req.Model)

		type datum struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		resp := struct {
			Data []datum `json:"data"`
		}{}
		for i := range req.Input {
			resp.Data = append(resp.Data, datum{Embedding: []float32{float32(i), 1}, Index: i})
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestHTTPEncoder_Encode(t *testing.T) {
	srv := fakeEmbedService(t, "sentence-transformers/all-MiniLM-L6-v2")
	defer srv.Close()

	enc := NewHTTPEncoder(srv.URL, "sentence-transformers/all-MiniLM-L6-v2", srv.Client())
	vec, err := enc.Encode(context.Background(), "open chromatin in K562")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, vec)
}

func TestHTTPEncoder_EncodeEmptyText(t *testing.T) {
	enc := NewHTTPEncoder("http://unused", "m", nil)
	_, err := enc.Encode(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestHTTPEncoder_EncodeRegions(t *testing.T) {
	srv := fakeEmbedService(t, "databio/r2v-encode-hg38")
	defer srv.Close()

	enc := NewHTTPEncoder(srv.URL, "databio/r2v-encode-hg38", srv.Client())
	vectors, err := enc.EncodeRegions(context.Background(), []Region{
		{Chrom: "chr1", Start: 0, End: 100},
		{Chrom: "chr2", Start: 5, End: 10},
	})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0, 1}, vectors[0])
	assert.Equal(t, []float32{1, 1}, vectors[1])
}

func TestHTTPEncoder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	enc := NewHTTPEncoder(srv.URL, "m", srv.Client())
	_, err := enc.Encode(context.Background(), "query")
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmbedEncodeFailure, errors.CodeOf(err))
}

func TestHTTPEncoder_Unreachable(t *testing.T) {
	enc := NewHTTPEncoder("http://127.0.0.1:1", "m", nil)
	_, err := enc.Encode(context.Background(), "query")
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestHTTPEncoder_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	enc := NewHTTPEncoder(srv.URL, "m", srv.Client())
	_, err := enc.Encode(context.Background(), "query")
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmbedEncodeFailure, errors.CodeOf(err))
}
