// Package semantic implements the Similarity Engine's semantic metric:
// batched sentence embeddings, L2-normalized, scored by dot product
// against the query vector.
package semantic

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"moves/pkg/embeddings"
	"moves/pkg/section"
)

// Metric embeds a query and a candidate set in a single batched call and
// scores each candidate as the dot product of its L2-normalized vector
// with the query's.
type Metric struct {
	provider embeddings.Provider
}

// New returns a Metric backed by the given embeddings provider.
func New(provider embeddings.Provider) *Metric {
	return &Metric{provider: provider}
}

// Compare embeds [query] ++ candidates' partial contents in one batched
// call (per-candidate embedding calls are forbidden by spec.md §4.3), then
// scores every candidate as the cosine similarity (dot product of
// L2-normalized vectors) against the query.
func (m *Metric) Compare(ctx context.Context, query string, candidates []section.Chunk) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, query)
	for _, c := range candidates {
		texts = append(texts, c.PartialContent)
	}

	vectors, err := m.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("semantic metric: embed batch: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("semantic metric: expected %d vectors, got %d", len(texts), len(vectors))
	}

	queryVec := normalize(vectors[0])
	scores := make([]float64, len(candidates))
	for i, v := range vectors[1:] {
		scores[i] = dot(normalize(v), queryVec)
	}
	return scores, nil
}

// normalize returns a copy of v scaled to unit L2 norm. A zero vector is
// returned unchanged (its dot product with anything is 0, the correct
// behavior for a degenerate embedding).
func normalize(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	norm := floats.Norm(out, 2)
	if norm == 0 {
		return out
	}
	floats.Scale(1/norm, out)
	return out
}

func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	return floats.Dot(a, b)
}
