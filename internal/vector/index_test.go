package vector

import "testing"

func TestNewIndexRejectsMixedDimensions(t *testing.T) {
	if _, err := NewIndex([][]float32{{1, 0}, {1}}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if _, err := NewIndex(nil); err == nil {
		t.Fatalf("expected error for empty vector set")
	}
}

func TestRankOrdersBySimilarityDesc(t *testing.T) {
	ix, err := NewIndex([][]float32{{0, 1}, {1, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	got := ix.Rank([]float32{1, 0}, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	if got[0].ChunkIndex != 1 || got[1].ChunkIndex != 2 || got[2].ChunkIndex != 0 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRankTieBreaksOnLowerIndex(t *testing.T) {
	// Indices 0 and 2 hold identical vectors; equal similarity must rank the
	// earlier chunk first.
	ix, err := NewIndex([][]float32{{1, 0}, {0, 1}, {1, 0}})
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	got := ix.Rank([]float32{1, 0}, 2)
	if len(got) != 2 || got[0].ChunkIndex != 0 || got[1].ChunkIndex != 2 {
		t.Fatalf("tie-break violated: %+v", got)
	}
	if got[0].Score != got[1].Score {
		t.Fatalf("expected equal scores, got %v and %v", got[0].Score, got[1].Score)
	}
}

func TestRankExcludesZeroVectors(t *testing.T) {
	ix, err := NewIndex([][]float32{{1, 0}, {0, 0}, {0, 1}})
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	got := ix.Rank([]float32{1, 1}, 5)
	if len(got) != 2 {
		t.Fatalf("expected zero vector excluded, got %+v", got)
	}
	for _, m := range got {
		if m.ChunkIndex == 1 {
			t.Fatalf("zero vector ranked: %+v", got)
		}
	}
}

func TestRankZeroQueryYieldsNothing(t *testing.T) {
	ix, err := NewIndex([][]float32{{1, 0}})
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	if got := ix.Rank([]float32{0, 0}, 3); got != nil {
		t.Fatalf("expected nil for zero query, got %+v", got)
	}
}

func TestRankClampsK(t *testing.T) {
	ix, err := NewIndex([][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	if got := ix.Rank([]float32{1, 0}, 10); len(got) != 2 {
		t.Fatalf("expected clamp to 2, got %d", len(got))
	}
	if got := ix.Rank([]float32{1, 0}, 0); got != nil {
		t.Fatalf("expected nil for k=0, got %+v", got)
	}
}
