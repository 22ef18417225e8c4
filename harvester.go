package vcfolio

// LinkHarvester extracts candidate navigable URLs from rendered markup.
//
// Candidates are raw strings, absolute or relative, collected from href
// attributes, inline event handlers, data-* navigation attributes, and
// inline script bodies. The result is duplicate-free in first-seen order.
// A markup parse failure yields an empty set rather than an error; the
// classifier downstream decides what is actually a company page.
type LinkHarvester interface {
	HarvestLinks(html string) []string
}
