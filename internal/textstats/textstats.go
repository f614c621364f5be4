// Package textstats computes linguistic statistics used to explain
// fake-news verdicts. Everything here is pure and deterministic.
package textstats

import (
	"math"
	"strings"
	"unicode"
)

// FeatureProfile holds the linguistic features of one article text.
type FeatureProfile struct {
	WordCount            int     `json:"word_count" bson:"word_count"`
	SentenceCount        int     `json:"sentence_count" bson:"sentence_count"`
	AvgWordLength        float64 `json:"avg_word_length" bson:"avg_word_length"`
	AvgSentenceLength    float64 `json:"avg_sentence_length" bson:"avg_sentence_length"`
	SensationalWordCount int     `json:"sensational_word_count" bson:"sensational_word_count"`
	EmotionalWordCount   int     `json:"emotional_word_count" bson:"emotional_word_count"`
	ExclamationCount     int     `json:"exclamation_count" bson:"exclamation_count"`
	QuestionCount        int     `json:"question_count" bson:"question_count"`
	CapsRatio            float64 `json:"caps_ratio" bson:"caps_ratio"`
}

// DefaultSensational is the built-in sensational-language lexicon.
var DefaultSensational = []string{
	"BREAKING", "SHOCKING", "URGENT", "EXCLUSIVE", "MUST READ",
	"UNBELIEVABLE", "AMAZING", "INCREDIBLE", "DEVASTATING",
}

// DefaultEmotional is the built-in emotional-language lexicon.
var DefaultEmotional = []string{
	"love", "hate", "fear", "angry", "excited", "worried", "shocked", "amazed",
}

// Analyzer computes FeatureProfiles against configurable lexicons.
type Analyzer struct {
	sensational map[string]struct{}
	emotional   map[string]struct{}
}

// NewAnalyzer builds an Analyzer. Empty lexicon slices fall back to the
// built-in lists. Sensational matching is against the uppercased word,
// emotional against the lowercased word.
func NewAnalyzer(sensational, emotional []string) *Analyzer {
	if len(sensational) == 0 {
		sensational = DefaultSensational
	}
	if len(emotional) == 0 {
		emotional = DefaultEmotional
	}

	a := &Analyzer{
		sensational: make(map[string]struct{}, len(sensational)),
		emotional:   make(map[string]struct{}, len(emotional)),
	}
	for _, w := range sensational {
		a.sensational[strings.ToUpper(w)] = struct{}{}
	}
	for _, w := range emotional {
		a.emotional[strings.ToLower(w)] = struct{}{}
	}
	return a
}

// Analyze derives a FeatureProfile from raw text. Safe on empty input:
// all counts and ratios are zero, never a division error.
func (a *Analyzer) Analyze(text string) FeatureProfile {
	words := strings.Fields(text)

	var sentences []string
	for _, s := range strings.Split(text, ".") {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}

	var p FeatureProfile
	p.WordCount = len(words)
	p.SentenceCount = len(sentences)

	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += len([]rune(w))
		}
		p.AvgWordLength = round2(float64(total) / float64(len(words)))
	}

	if len(sentences) > 0 {
		total := 0
		for _, s := range sentences {
			total += len(strings.Fields(s))
		}
		p.AvgSentenceLength = round2(float64(total) / float64(len(sentences)))
	}

	for _, w := range words {
		if _, ok := a.sensational[strings.ToUpper(w)]; ok {
			p.SensationalWordCount++
		}
		if _, ok := a.emotional[strings.ToLower(w)]; ok {
			p.EmotionalWordCount++
		}
	}

	p.ExclamationCount = strings.Count(text, "!")
	p.QuestionCount = strings.Count(text, "?")

	runes := []rune(text)
	if len(runes) > 0 {
		upper := 0
		for _, r := range runes {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		p.CapsRatio = float64(upper) / float64(len(runes))
	}

	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
