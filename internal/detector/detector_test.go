package detector

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/truthguard-ai/truthguard/internal/classifier"
	"github.com/truthguard-ai/truthguard/internal/metrics"
	"github.com/truthguard-ai/truthguard/internal/sources"
	"github.com/truthguard-ai/truthguard/internal/textstats"
)

type fakeClassifier struct {
	mu    sync.Mutex
	calls int
	score classifier.Score
	err   error
}

func (f *fakeClassifier) Classify(text string) (classifier.Score, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.score, f.err
}

func (f *fakeClassifier) Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func (f *fakeClassifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type flatScorer struct{}

func (flatScorer) Score(tokens []string) []float64 {
	out := make([]float64, len(tokens))
	for i := range out {
		out[i] = 1
	}
	return out
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Close(ctx context.Context) error { return nil }

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

type noSources struct{}

func (noSources) Gather(ctx context.Context, query string) []sources.Source { return nil }

func newTestDetector(model *fakeClassifier, c *memCache) *Detector {
	return New(
		model,
		flatScorer{},
		textstats.NewAnalyzer(nil, nil),
		noSources{},
		c,
		metrics.New(prometheus.NewRegistry()),
		50*time.Millisecond,
	)
}

func validArticle() Article {
	return Article{
		Headline: "BREAKING: Scientists discover cure",
		Body:     "This SHOCKING miracle cure works instantly!!! Doctors HATE it!",
	}
}

func waitForCacheWrite(t *testing.T, c *memCache) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.len() > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("cache write-back never happened")
}

func TestDetectValidation(t *testing.T) {
	d := newTestDetector(&fakeClassifier{}, newMemCache())

	cases := []Article{
		{Headline: "short", Body: "a perfectly long enough body text"},
		{Headline: "a perfectly long enough headline", Body: "   tiny   "},
	}
	for _, a := range cases {
		_, err := d.Detect(context.Background(), a)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	}
}

func TestDetectFakeVerdict(t *testing.T) {
	model := &fakeClassifier{score: classifier.Score{Fake: 0.87, Real: 0.13}}
	d := newTestDetector(model, newMemCache())

	got, err := d.Detect(context.Background(), validArticle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Label != classifier.LabelFake {
		t.Fatalf("label: got %s, want FAKE", got.Label)
	}
	if got.Confidence != 87.0 {
		t.Fatalf("confidence: got %f, want 87.0", got.Confidence)
	}
	if !strings.Contains(got.Explanation, "sensational keywords") {
		t.Fatalf("fake explanation must mention sensational keywords: %s", got.Explanation)
	}
	if got.TechnicalDetails.SensationalWordCount == 0 {
		t.Fatal("expected sensational words in the sample article")
	}
	if got.TechnicalDetails.ExclamationCount != 4 {
		t.Fatalf("exclamation count: got %d, want 4", got.TechnicalDetails.ExclamationCount)
	}
	if len(got.SuspiciousWords) > 10 {
		t.Fatalf("suspicious words exceed cap: %d", len(got.SuspiciousWords))
	}
	if got.Timestamp == "" {
		t.Fatal("timestamp must be set")
	}
}

func TestDetectRealVerdict(t *testing.T) {
	model := &fakeClassifier{score: classifier.Score{Fake: 0.1, Real: 0.9}}
	d := newTestDetector(model, newMemCache())

	got, err := d.Detect(context.Background(), Article{
		Headline: "City council approves annual budget",
		Body:     "The council voted to approve the budget after a routine session on Tuesday.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Label != classifier.LabelReal {
		t.Fatalf("label: got %s, want REAL", got.Label)
	}
	if !strings.Contains(got.Explanation, "appears authentic") {
		t.Fatalf("real explanation must be the neutral template: %s", got.Explanation)
	}
}

func TestDetectSecondCallHitsCache(t *testing.T) {
	model := &fakeClassifier{score: classifier.Score{Fake: 0.7, Real: 0.3}}
	c := newMemCache()
	d := newTestDetector(model, c)

	first, err := d.Detect(context.Background(), validArticle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForCacheWrite(t, c)

	second, err := d.Detect(context.Background(), validArticle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if model.callCount() != 1 {
		t.Fatalf("expected a single inference, got %d", model.callCount())
	}
	if second.Label != first.Label || second.Confidence != first.Confidence ||
		second.Explanation != first.Explanation {
		t.Fatalf("cached result differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDetectCorruptCacheEntryIsAMiss(t *testing.T) {
	model := &fakeClassifier{score: classifier.Score{Fake: 0.6, Real: 0.4}}
	c := newMemCache()
	d := newTestDetector(model, c)

	article := validArticle()
	key := CacheKey("BREAKING: Scientists discover cure " + article.Body)
	c.Set(context.Background(), key, []byte("{not json"))

	got, err := d.Detect(context.Background(), article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.callCount() != 1 {
		t.Fatal("corrupt entry must fall through to inference")
	}
	if got.Label != classifier.LabelFake {
		t.Fatalf("unexpected label %s", got.Label)
	}
}

func TestDetectClassifierErrorNoCacheWrite(t *testing.T) {
	model := &fakeClassifier{err: classifier.ErrInferenceFailed}
	c := newMemCache()
	d := newTestDetector(model, c)

	_, err := d.Detect(context.Background(), validArticle())
	if !errors.Is(err, classifier.ErrInferenceFailed) {
		t.Fatalf("expected ErrInferenceFailed, got %v", err)
	}

	// Give any stray write-back a chance to land before asserting.
	time.Sleep(50 * time.Millisecond)
	if c.len() != 0 {
		t.Fatal("failed detections must not write partial cache entries")
	}
}

func TestCacheKeyNamespaceAndStability(t *testing.T) {
	a := CacheKey("some text")
	b := CacheKey("some text")
	other := CacheKey("other text")

	if a != b {
		t.Fatal("cache key must be stable for identical text")
	}
	if a == other {
		t.Fatal("different text must hash differently")
	}
	if !strings.HasPrefix(a, "detection:") {
		t.Fatalf("cache key missing namespace: %s", a)
	}
}
