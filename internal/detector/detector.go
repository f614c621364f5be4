// Package detector orchestrates the detection pipeline: cache lookup,
// inference, salience extraction, feature analysis, explanation, source
// gathering, and asynchronous cache write-back.
package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/truthguard-ai/truthguard/internal/cache"
	"github.com/truthguard-ai/truthguard/internal/classifier"
	"github.com/truthguard-ai/truthguard/internal/explain"
	"github.com/truthguard-ai/truthguard/internal/logger"
	"github.com/truthguard-ai/truthguard/internal/metrics"
	"github.com/truthguard-ai/truthguard/internal/salience"
	"github.com/truthguard-ai/truthguard/internal/sources"
	"github.com/truthguard-ai/truthguard/internal/textstats"
)

const cacheWriteTimeout = 10 * time.Second

// TextClassifier is the trained model contract the orchestrator needs:
// two-class scoring plus the tokenization that importance scores align with.
type TextClassifier interface {
	Classify(text string) (classifier.Score, error)
	Tokenize(text string) []string
}

// SourceGatherer collects corroborating references for a query.
type SourceGatherer interface {
	Gather(ctx context.Context, query string) []sources.Source
}

// Detector runs the full detection pipeline.
type Detector struct {
	model         TextClassifier
	scorer        salience.ImportanceScorer
	analyzer      *textstats.Analyzer
	gatherer      SourceGatherer
	cache         cache.Cache
	metrics       *metrics.Metrics
	sourceTimeout time.Duration
}

// New wires the pipeline. A nil cache downgrades to no-op caching.
func New(model TextClassifier, scorer salience.ImportanceScorer, analyzer *textstats.Analyzer,
	gatherer SourceGatherer, c cache.Cache, m *metrics.Metrics, sourceTimeout time.Duration) *Detector {
	if c == nil {
		c = cache.Noop{}
	}
	return &Detector{
		model:         model,
		scorer:        scorer,
		analyzer:      analyzer,
		gatherer:      gatherer,
		cache:         c,
		metrics:       m,
		sourceTimeout: sourceTimeout,
	}
}

// Detect classifies one article. On a cache hit the stored result is
// returned as-is; otherwise the pipeline runs and the assembled result
// is written back to the cache without blocking the response.
func (d *Detector) Detect(ctx context.Context, article Article) (*DetectionResult, error) {
	start := time.Now()

	if err := article.Validate(); err != nil {
		return nil, err
	}

	fullText := article.FullText()
	key := CacheKey(fullText)

	if cached := d.lookupCache(ctx, key); cached != nil {
		logger.Log.WithField("key", key).Debug("returning cached result")
		d.metrics.ObserveCacheHit()
		d.metrics.ObserveDetection(cached.Label, time.Since(start))
		return cached, nil
	}

	score, err := d.model.Classify(fullText)
	if err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"input_len": len(fullText),
		}).Errorf("classification failed: %v", err)
		return nil, fmt.Errorf("classify article: %w", err)
	}

	tokens := d.model.Tokenize(fullText)
	importance := d.scorer.Score(tokens)
	suspicious := salience.ExtractSuspicious(tokens, importance)
	if suspicious == nil {
		suspicious = []string{}
	}

	profile := d.analyzer.Analyze(fullText)
	label := score.Label()
	explanation := explain.Compose(label, suspicious, profile)

	// Source lookups are independent of the client connection: a
	// disconnect does not cancel them, only the timeout bounds them.
	srcCtx, cancel := context.WithTimeout(context.Background(), d.sourceTimeout)
	defer cancel()
	refs := d.gatherer.Gather(srcCtx, article.Headline)
	if refs == nil {
		refs = []sources.Source{}
	}

	result := &DetectionResult{
		Label:            label,
		Confidence:       math.Round(score.Confidence()*10) / 10,
		Explanation:      explanation,
		SuspiciousWords:  suspicious,
		Sources:          refs,
		TechnicalDetails: profile,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}

	// Fire-and-forget: the response never waits on cache persistence,
	// and a detached context lets the write outlive the client.
	go d.writeBack(key, result)

	d.metrics.ObserveDetection(label, time.Since(start))
	logger.Log.WithFields(map[string]interface{}{
		"label":      label,
		"confidence": result.Confidence,
	}).Info("detection completed")

	return result, nil
}

// lookupCache treats every failure, including corrupt entries, as a miss.
func (d *Detector) lookupCache(ctx context.Context, key string) *DetectionResult {
	data, err := d.cache.Get(ctx, key)
	if err != nil {
		logger.Log.Warnf("cache lookup degraded to miss: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var r DetectionResult
	if err := json.Unmarshal(data, &r); err != nil {
		logger.Log.Warnf("discarding corrupt cache entry %s: %v", key, err)
		return nil
	}
	if !r.valid() {
		logger.Log.Warnf("discarding structurally invalid cache entry %s", key)
		return nil
	}
	return &r
}

func (d *Detector) writeBack(key string, result *DetectionResult) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
	defer cancel()

	data, err := json.Marshal(result)
	if err != nil {
		logger.Log.Errorf("serialize result for cache: %v", err)
		return
	}
	if err := d.cache.Set(ctx, key, data); err != nil {
		logger.Log.Warnf("cache write-back failed: %v", err)
	}
}
