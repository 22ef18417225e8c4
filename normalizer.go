package vcfolio

// ContentNormalizer reduces rendered markup to a compact line-oriented
// text form suitable as model input.
//
// Non-content elements (scripts, styles, nav, chrome) are discarded; each
// remaining text-bearing element becomes one line of the form
// "<tag> <classes>: <text>" in document order. No length bound is applied
// here; the extractor truncates at prompt-construction time.
type ContentNormalizer interface {
	Normalize(html string) string
}
