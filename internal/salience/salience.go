// Package salience selects the tokens that most influenced a classifier
// verdict, given per-token importance scores.
package salience

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// continuationPrefix marks WordPiece subword fragments, which are
	// never reported as suspicious terms on their own.
	continuationPrefix = "##"

	percentileCutoff = 90.0
	maxTerms         = 10
	minTokenLen      = 3
)

// ExtractSuspicious returns at most 10 tokens whose importance is at or
// above the 90th percentile. Subword fragments, tokens shorter than 3
// characters, and non-alphabetic tokens are dropped. Duplicates are
// removed keeping first-occurrence order, so output is reproducible for
// a fixed input.
func ExtractSuspicious(tokens []string, importance []float64) []string {
	if len(tokens) == 0 || len(importance) == 0 {
		return nil
	}
	n := len(tokens)
	if len(importance) < n {
		n = len(importance)
	}

	threshold := percentile(importance[:n], percentileCutoff)

	var out []string
	seen := make(map[string]struct{})
	for i := 0; i < n; i++ {
		if importance[i] < threshold {
			continue
		}
		token := tokens[i]
		if !eligible(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
		if len(out) == maxTerms {
			break
		}
	}
	return out
}

func eligible(token string) bool {
	if strings.HasPrefix(token, continuationPrefix) {
		return false
	}
	runes := []rune(token)
	if len(runes) < minTokenLen {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// percentile computes the p-th percentile with linear interpolation
// between closest ranks. With all-equal input the result equals that
// value, so every index qualifies against a >= comparison.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
