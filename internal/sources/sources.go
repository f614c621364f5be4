// Package sources gathers corroborating fact-check references for a
// detection query. Lookups are best-effort: timeouts and provider errors
// degrade to fewer (or zero) sources, never to a failed detection.
package sources

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/truthguard-ai/truthguard/internal/logger"
)

const maxQueryLen = 50

// Source is one corroborating or refuting reference.
type Source struct {
	Title       string `json:"title" bson:"title"`
	URL         string `json:"url" bson:"url"`
	Credibility int    `json:"credibility" bson:"credibility"`
}

// Provider performs a single upstream lookup. Implementations must honor
// the context deadline and may return partial results with an error.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, query string) ([]Source, error)
}

// Aggregator fans a query out to all providers concurrently.
type Aggregator struct {
	providers []Provider
}

func NewAggregator(providers ...Provider) *Aggregator {
	return &Aggregator{providers: providers}
}

// Gather collects sources from every provider, tolerating individual
// failures. Results are ordered by descending credibility. An empty
// slice is a valid outcome, not an error.
func (a *Aggregator) Gather(ctx context.Context, query string) []Source {
	query = SanitizeQuery(query)

	var (
		mu  sync.Mutex
		out []Source
		wg  sync.WaitGroup
	)

	for _, p := range a.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			found, err := p.Lookup(ctx, query)
			if err != nil {
				logger.Log.WithField("provider", p.Name()).Warnf("source lookup failed: %v", err)
			}
			if len(found) > 0 {
				mu.Lock()
				out = append(out, found...)
				mu.Unlock()
			}
		}(p)
	}
	wg.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Credibility > out[j].Credibility
	})
	return out
}

// SanitizeQuery collapses whitespace to '+' and caps length so the query
// is always safe to embed in a constructed URL.
func SanitizeQuery(q string) string {
	q = strings.Join(strings.Fields(q), "+")
	if len(q) > maxQueryLen {
		q = q[:maxQueryLen]
	}
	return q
}
