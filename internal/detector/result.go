package detector

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/truthguard-ai/truthguard/internal/classifier"
	"github.com/truthguard-ai/truthguard/internal/sources"
	"github.com/truthguard-ai/truthguard/internal/textstats"
)

// cacheNamespace prefixes every cache key so detection entries never
// collide with unrelated data sharing the store.
const cacheNamespace = "detection:"

// DetectionResult is the immutable, cacheable unit of output.
type DetectionResult struct {
	Label            string                   `json:"label"`
	Confidence       float64                  `json:"confidence"`
	Explanation      string                   `json:"explanation"`
	SuspiciousWords  []string                 `json:"suspicious_words"`
	Sources          []sources.Source         `json:"sources"`
	TechnicalDetails textstats.FeatureProfile `json:"technical_details"`
	Timestamp        string                   `json:"timestamp"`
}

// valid reports whether a deserialized cache entry is structurally
// usable. Anything else is treated as a cache miss.
func (r *DetectionResult) valid() bool {
	return (r.Label == classifier.LabelFake || r.Label == classifier.LabelReal) &&
		r.Confidence >= 0 && r.Confidence <= 100 &&
		r.Explanation != "" &&
		r.Timestamp != ""
}

// CacheKey derives the namespaced content hash for the exact text used
// for inference.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheNamespace + hex.EncodeToString(sum[:])
}
