package textstats

import (
	"math"
	"testing"
)

func TestAnalyzeEmptyText(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	p := a.Analyze("")

	if p.WordCount != 0 || p.SentenceCount != 0 {
		t.Fatalf("expected zero counts, got %+v", p)
	}
	if p.CapsRatio != 0 {
		t.Fatalf("caps ratio for empty text must be 0, got %f", p.CapsRatio)
	}
	if p.AvgWordLength != 0 || p.AvgSentenceLength != 0 {
		t.Fatalf("averages for empty text must be 0, got %+v", p)
	}
}

func TestAnalyzeCounts(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	p := a.Analyze("BREAKING news today. People love cats. Really?!")

	if p.WordCount != 7 {
		t.Fatalf("expected 7 words, got %d", p.WordCount)
	}
	if p.SentenceCount != 3 {
		t.Fatalf("expected 3 sentences, got %d", p.SentenceCount)
	}
	if p.SensationalWordCount != 1 {
		t.Fatalf("expected 1 sensational word, got %d", p.SensationalWordCount)
	}
	if p.EmotionalWordCount != 1 {
		t.Fatalf("expected 1 emotional word, got %d", p.EmotionalWordCount)
	}
	if p.ExclamationCount != 1 || p.QuestionCount != 1 {
		t.Fatalf("punctuation counts wrong: %+v", p)
	}
}

func TestAnalyzeLexiconsAreCaseInsensitive(t *testing.T) {
	a := NewAnalyzer([]string{"shocking"}, []string{"FEAR"})
	p := a.Analyze("SHOCKING fear")

	if p.SensationalWordCount != 1 {
		t.Fatalf("sensational lexicon should be case-insensitive, got %d", p.SensationalWordCount)
	}
	if p.EmotionalWordCount != 1 {
		t.Fatalf("emotional lexicon should be case-insensitive, got %d", p.EmotionalWordCount)
	}
}

func TestAnalyzeCapsRatio(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	p := a.Analyze("ABcd")

	if math.Abs(p.CapsRatio-0.5) > 1e-9 {
		t.Fatalf("expected caps ratio 0.5, got %f", p.CapsRatio)
	}
	if p.CapsRatio < 0 || p.CapsRatio > 1 {
		t.Fatalf("caps ratio out of range: %f", p.CapsRatio)
	}
}

func TestAnalyzeAverages(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	// Words keep attached punctuation: lengths 2, 3, 4, 5.
	p := a.Analyze("ab cd. abcd efgh.")

	if p.AvgWordLength != 3.5 {
		t.Fatalf("expected avg word length 3.5, got %f", p.AvgWordLength)
	}
	if p.AvgSentenceLength != 2.0 {
		t.Fatalf("expected avg sentence length 2.0, got %f", p.AvgSentenceLength)
	}
}

func TestAnalyzeDiscardsEmptySentenceFragments(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	p := a.Analyze("One sentence... trailing dots.")

	if p.SentenceCount != 2 {
		t.Fatalf("empty fragments must be discarded, got %d sentences", p.SentenceCount)
	}
}
