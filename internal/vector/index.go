package vector

import (
	"fmt"
	"math"
	"sort"
)

// Match pairs a chunk index with its cosine similarity to a query, in [-1, 1].
type Match struct {
	ChunkIndex int
	Score      float64
}

// Index holds the embeddings of one document and ranks them against a query
// by brute-force cosine similarity. Read-only after construction, safe for
// concurrent Rank calls.
type Index struct {
	dim     int
	vectors [][]float32
}

// NewIndex builds an index over the given vectors. All vectors must share one
// dimension; the slice order is the chunk order.
func NewIndex(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors to index")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimension vectors")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}
	return &Index{dim: dim, vectors: vectors}, nil
}

func (ix *Index) Len() int { return len(ix.vectors) }

func (ix *Index) Dimension() int { return ix.dim }

// Rank returns the top-k stored vectors by cosine similarity to query,
// descending. Ties are broken by lower chunk index so results are
// deterministic. Exact-zero vectors (stored or query) have undefined
// similarity and are excluded rather than failing the call.
func (ix *Index) Rank(query []float32, k int) []Match {
	if k <= 0 || len(query) != ix.dim {
		return nil
	}
	qn := normOf(query)
	if qn == 0 {
		return nil
	}
	matches := make([]Match, 0, len(ix.vectors))
	for i, v := range ix.vectors {
		vn := normOf(v)
		if vn == 0 {
			continue
		}
		matches = append(matches, Match{ChunkIndex: i, Score: dot(query, v) / (qn * vn)})
	}
	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return matches[a].ChunkIndex < matches[b].ChunkIndex
	})
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}

func dot(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func normOf(v []float32) float64 {
	sum := 0.0
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
