// Package embeddings defines the Provider interface for sentence-
// embedding backends used by the Similarity Engine's semantic metric.
//
// An embeddings provider wraps a service that maps text strings to dense,
// L2-normalized float32 vectors (e.g., a local sentence-transformer model
// served through Ollama, or OpenAI's embedding API). These vectors feed
// pkg/semantic's batched cosine-similarity scoring.
//
// Implementations must be safe for concurrent use.
package embeddings

import "context"

// Provider is the abstraction over any sentence-embedding backend.
//
// All embedding vectors returned by a single Provider instance must share
// the same dimensionality (returned by Dimensions).
type Provider interface {
	// Embed computes the embedding vector for a single text string.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch computes embedding vectors for a slice of text strings in
	// a single provider call. Per-candidate embedding calls are forbidden
	// by the Similarity Engine's contract (spec.md §4.3) — this is the
	// only entry point pkg/semantic uses at runtime. The returned slice
	// has the same length as texts; result[i] corresponds to texts[i].
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the fixed length of every embedding vector
	// produced by this provider.
	Dimensions() int

	// ModelID returns the provider-specific model identifier, for logging.
	ModelID() string
}
