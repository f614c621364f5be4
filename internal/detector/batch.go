package detector

import (
	"context"
	"encoding/json"
	"sync"
)

const maxBatchSize = 10

// ErrorRecord is the per-item failure placeholder in a batch response.
type ErrorRecord struct {
	Error    string `json:"error"`
	Headline string `json:"headline"`
}

// BatchItem holds either a result or an error record for one article.
// Exactly one of the two fields is set.
type BatchItem struct {
	Result *DetectionResult
	Err    *ErrorRecord
}

// MarshalJSON flattens the item to whichever side is populated, matching
// the wire format {results: [DetectionResult | {error, headline}]}.
func (b BatchItem) MarshalJSON() ([]byte, error) {
	if b.Err != nil {
		return json.Marshal(b.Err)
	}
	return json.Marshal(b.Result)
}

// DetectBatch processes up to 10 articles through the pipeline. It fails
// fast on oversized input before touching any item; otherwise items run
// independently and a failure on one never aborts the rest. Result order
// matches input order.
func (d *Detector) DetectBatch(ctx context.Context, articles []Article) ([]BatchItem, error) {
	if len(articles) > maxBatchSize {
		return nil, ErrBatchTooLarge
	}

	items := make([]BatchItem, len(articles))
	var wg sync.WaitGroup
	for i, article := range articles {
		wg.Add(1)
		go func(i int, article Article) {
			defer wg.Done()
			result, err := d.Detect(ctx, article)
			if err != nil {
				items[i] = BatchItem{Err: &ErrorRecord{
					Error:    err.Error(),
					Headline: headlineExcerpt(article.Headline),
				}}
				return
			}
			items[i] = BatchItem{Result: result}
		}(i, article)
	}
	wg.Wait()

	return items, nil
}

// headlineExcerpt keeps the first 50 characters for error reporting.
func headlineExcerpt(headline string) string {
	runes := []rune(headline)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes) + "..."
}
