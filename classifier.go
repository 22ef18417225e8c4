package vcfolio

import "context"

// LinkClassifier filters harvested candidate links down to the ones that
// point at individual portfolio-company pages, discarding navigation,
// social, and asset links.
type LinkClassifier interface {
	// ClassifyLinks returns absolute company-page URLs, deduplicated in
	// first-seen order. Relative candidates are resolved against
	// sourceURL. A model-call or parse failure returns an empty list,
	// never an error crossing the component boundary; the caller treats
	// zero company URLs as a run-level condition.
	ClassifyLinks(ctx context.Context, candidates []string, sourceURL string) []string
}
