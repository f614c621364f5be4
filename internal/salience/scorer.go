package salience

import "hash/fnv"

// ImportanceScorer supplies per-token importance aligned 1:1 with the
// token sequence. Implementations may read attention weights, gradient
// attributions, or any equivalent explainability signal.
type ImportanceScorer interface {
	Score(tokens []string) []float64
}

// HashScorer is a deterministic stand-in for model attribution weights.
// It maps each token to a stable pseudo-score in [0,1) derived from an
// FNV hash, so detection output is reproducible across runs and tests.
type HashScorer struct{}

func (HashScorer) Score(tokens []string) []float64 {
	scores := make([]float64, len(tokens))
	for i, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		scores[i] = float64(h.Sum32()%10000) / 10000
	}
	return scores
}
