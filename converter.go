package vcfolio

// Converter converts HTML to Markdown. Used by the page snapshot store to
// keep fetched pages in a readable form.
type Converter interface {
	Convert(html string) (string, error)
}
