package detector

import (
	"fmt"
	"strings"
)

const minTextLen = 10

// Article is one news item submitted for detection. Fields are trimmed
// and validated at ingress and never mutated afterwards.
type Article struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	URL      string `json:"url,omitempty"`
}

// Validate trims the article in place and enforces the minimum-length
// rule. Failures are client errors, wrapped in ErrValidation.
func (a *Article) Validate() error {
	a.Headline = strings.TrimSpace(a.Headline)
	a.Body = strings.TrimSpace(a.Body)

	if len(a.Headline) < minTextLen {
		return fmt.Errorf("%w: headline must be at least %d characters long", ErrValidation, minTextLen)
	}
	if len(a.Body) < minTextLen {
		return fmt.Errorf("%w: body must be at least %d characters long", ErrValidation, minTextLen)
	}
	return nil
}

// FullText is the exact text fed to the classifier and hashed for the
// cache key: headline and body joined by a single space.
func (a *Article) FullText() string {
	return a.Headline + " " + a.Body
}
