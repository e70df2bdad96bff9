// Package similarity implements the Similarity Engine: fuses the
// phonetic and semantic metrics with per-metric cross-normalization and
// fixed weights into a single ranked candidate list.
package similarity

import (
	"context"
	"fmt"
	"sort"

	"moves/pkg/phonetic"
	"moves/pkg/section"
	"moves/pkg/semantic"
)

// DefaultSemanticWeight and DefaultPhoneticWeight are the spec-fixed
// fusion weights: phonetic slightly dominant because live ASR output is
// noisier phonetically than semantically.
const (
	DefaultSemanticWeight = 0.4
	DefaultPhoneticWeight = 0.6
)

// floorScore is the non-match floor applied before cross-normalization:
// any raw metric score below this is discarded (treated as 0).
const floorScore = 0.5

// Engine composes the phonetic and semantic metrics behind the fixed
// fusion weights spec.md §4.3 mandates.
type Engine struct {
	phonetic *phonetic.Matcher
	semantic *semantic.Metric

	semanticWeight float64
	phoneticWeight float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the default 0.4/0.6 semantic/phonetic fusion
// weights. spec.md §9 notes implementers may parameterize these.
func WithWeights(semanticWeight, phoneticWeight float64) Option {
	return func(e *Engine) {
		e.semanticWeight = semanticWeight
		e.phoneticWeight = phoneticWeight
	}
}

// New returns an Engine backed by the given semantic embeddings metric,
// with its own internal phonetic matcher (phonetic matching needs no
// external collaborator).
func New(semanticMetric *semantic.Metric, opts ...Option) *Engine {
	e := &Engine{
		phonetic:       phonetic.New(),
		semantic:       semanticMetric,
		semanticWeight: DefaultSemanticWeight,
		phoneticWeight: DefaultPhoneticWeight,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Compare returns candidates ranked by fused similarity score,
// descending. Returns an empty result for an empty candidate list without
// calling either metric. A failure in either metric is a fatal engine
// error — the caller (the Presentation Controller's navigation step)
// decides whether to abort the step or the session.
func (e *Engine) Compare(ctx context.Context, query string, candidates []section.Chunk) ([]section.SimilarityResult, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	phoneticScores := make([]float64, len(candidates))
	for i, c := range candidates {
		phoneticScores[i] = e.phonetic.Score(query, c.PartialContent)
	}

	semanticScores, err := e.semantic.Compare(ctx, query, candidates)
	if err != nil {
		return nil, fmt.Errorf("similarity engine: semantic metric: %w", err)
	}

	phoNorm := crossNormalize(phoneticScores)
	semNorm := crossNormalize(semanticScores)

	results := make([]section.SimilarityResult, len(candidates))
	for i, c := range candidates {
		results[i] = section.SimilarityResult{
			Chunk: c,
			Score: e.semanticWeight*semNorm[i] + e.phoneticWeight*phoNorm[i],
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// crossNormalize applies the three-step per-metric normalization from
// spec.md §4.3: scores below floorScore are discarded to 0; among the
// survivors, min-max normalize to [0,1] (all survivors become 1.0 if
// min == max); discarded scores stay 0.
func crossNormalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	var min, max float64
	first := true

	for i, s := range scores {
		if s < floorScore {
			continue
		}
		out[i] = s
		if first {
			min, max = s, s
			first = false
			continue
		}
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	if first {
		// No survivors; every entry was floored to 0 already.
		return out
	}

	for i, s := range out {
		if scores[i] < floorScore {
			continue
		}
		if max == min {
			out[i] = 1.0
			continue
		}
		out[i] = (s - min) / (max - min)
	}
	return out
}
