package vector

import (
	"cmp"
	"slices"
)

// Rank orders results by descending score, breaking ties by ascending Seq,
// and returns at most k of them. Backends pass their raw matches through
// Rank so every index orders results identically.
func Rank(results []QueryResult, k int) []QueryResult {
	k = CapK(k, len(results))
	if k == 0 {
		return []QueryResult{}
	}

	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, func(a, b QueryResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return ranked[:k]
}

// CapK bounds a requested result count to [0, n].
func CapK(k, n int) int {
	if k <= 0 || n <= 0 {
		return 0
	}
	return min(k, n)
}

// CheckDimensions verifies that every document embedding has dims entries.
// A dims of zero adopts the first document's dimensionality, which is
// returned.
func CheckDimensions(dims int, docs []Document) (int, error) {
	for _, doc := range docs {
		if dims == 0 {
			dims = len(doc.Embedding)
		}
		if len(doc.Embedding) != dims || dims == 0 {
			return dims, fmtDimension(doc.ID, dims, len(doc.Embedding))
		}
	}
	return dims, nil
}
