package semantic

import (
	"context"
	"testing"

	"moves/pkg/embeddings/mock"
	"moves/pkg/section"
)

func TestCompareIdenticalTextScoresHighest(t *testing.T) {
	m := New(mock.New(16))
	candidates := []section.Chunk{
		{PartialContent: "machine learning"},
		{PartialContent: "deep learning"},
		{PartialContent: "neural networks"},
	}

	scores, err := m.Compare(context.Background(), "machine learning", candidates)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if len(scores) != len(candidates) {
		t.Fatalf("len(scores) = %d, want %d", len(scores), len(candidates))
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	if candidates[best].PartialContent != "machine learning" {
		t.Fatalf("best match = %q, want %q", candidates[best].PartialContent, "machine learning")
	}
	if scores[best] < 0.99 {
		t.Fatalf("identical-text score = %v, want ~1.0", scores[best])
	}
}

func TestCompareEmptyCandidates(t *testing.T) {
	m := New(mock.New(8))
	scores, err := m.Compare(context.Background(), "query", nil)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no scores, got %d", len(scores))
	}
}
