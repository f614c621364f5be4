// Package explain renders the human-readable verdict explanation.
package explain

import (
	"fmt"

	"github.com/truthguard-ai/truthguard/internal/classifier"
	"github.com/truthguard-ai/truthguard/internal/textstats"
)

const realExplanation = "This content appears authentic based on neutral language, credible structure, " +
	"and absence of common misinformation indicators. The text follows journalistic standards " +
	"with balanced tone and factual presentation."

// Compose builds a deterministic explanation for a verdict. It is a pure
// function of already-computed inputs; no model call happens here.
func Compose(label string, suspicious []string, profile textstats.FeatureProfile) string {
	if label != classifier.LabelFake {
		return realExplanation
	}

	return fmt.Sprintf(
		"This content shows %d suspicious indicators including sensational language, "+
			"emotional manipulation, and %d sensational keywords. "+
			"The text has %d exclamation marks and %.1f%% capital letters, "+
			"suggesting emotional manipulation.",
		len(suspicious),
		profile.SensationalWordCount,
		profile.ExclamationCount,
		profile.CapsRatio*100,
	)
}
