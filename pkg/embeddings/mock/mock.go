// Package mock provides a deterministic, in-memory embeddings.Provider
// for tests that exercise pkg/semantic and pkg/similarity without a
// network dependency.
package mock

import (
	"context"
	"hash/fnv"

	"moves/pkg/embeddings"
)

var _ embeddings.Provider = (*Provider)(nil)

// Provider produces deterministic pseudo-embeddings: each text is hashed
// into a fixed-dimension vector so that identical texts always produce
// identical (and therefore maximally similar) vectors, and different
// texts produce different vectors, without needing a real model.
type Provider struct {
	dims int
}

// New returns a Provider producing vectors of the given dimension.
func New(dims int) *Provider {
	return &Provider{dims: dims}
}

// Embed implements embeddings.Provider.
func (p *Provider) Embed(_ context.Context, text string) ([]float32, error) {
	return embed(text, p.dims), nil
}

// EmbedBatch implements embeddings.Provider.
func (p *Provider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = embed(t, p.dims)
	}
	return out, nil
}

// Dimensions implements embeddings.Provider.
func (p *Provider) Dimensions() int { return p.dims }

// ModelID implements embeddings.Provider.
func (p *Provider) ModelID() string { return "mock" }

// embed deterministically derives a dims-length vector from text by
// seeding a simple PRNG with its FNV hash.
func embed(text string, dims int) []float32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	state := h.Sum64()

	vec := make([]float32, dims)
	for i := range vec {
		state = state*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int32(state>>32)) / float32(1<<31)
	}
	return vec
}
