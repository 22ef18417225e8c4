package vcfolio

import "context"

// Page is a snapshot of a fetched page kept for debugging a scrape run.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown
}

// PageStore persists page snapshots with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
