package goquery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"vcfolio"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMinTextLength filters out label fragments and icon glyphs.
const DefaultMinTextLength = 3

// discardSelector lists the elements whose text must not reach the model.
const discardSelector = "script, style, nav, header, footer, meta, svg, iframe"

// keepSelector lists the text-bearing elements serialized into output,
// visited in document order.
const keepSelector = "h1, h2, h3, h4, h5, h6, p, div, article, section"

// relevantClassHints marks lines whose class list suggests company facts,
// so the extraction model can weight them.
var relevantClassHints = []string{
	"name", "description", "about", "location", "industry",
	"company", "sector", "hq",
}

// Ensure Normalizer implements vcfolio.ContentNormalizer at compile time.
var _ vcfolio.ContentNormalizer = (*Normalizer)(nil)

// Normalizer serializes rendered markup into the line-oriented text form
// consumed by the company extractor: one "<tag> <classes>: <text>" line
// per kept element.
//
// No length bound is applied here. The extractor truncates the joined
// text at prompt-construction time, which loses tail content on long
// pages.
type Normalizer struct {
	minTextLength int
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithMinTextLength sets the minimum trimmed text length for an element to
// be kept. Defaults to DefaultMinTextLength.
func WithMinTextLength(n int) NormalizerOption {
	return func(nz *Normalizer) { nz.minTextLength = n }
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	nz := &Normalizer{minTextLength: DefaultMinTextLength}
	for _, opt := range opts {
		opt(nz)
	}
	return nz
}

// Normalize returns the line-oriented text representation of the markup.
// A parse failure yields an empty string.
func (nz *Normalizer) Normalize(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find(discardSelector).Remove()

	var lines []string
	doc.Find(keepSelector).Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace(sel.Text())
		if utf8.RuneCountInString(text) < nz.minTextLength {
			return
		}

		tag := goquery.NodeName(sel)
		classes := collapseWhitespace(sel.AttrOr("class", ""))

		line := fmt.Sprintf("%s %s: %s", tag, classes, text)
		if hasRelevantClass(classes) {
			line = "* " + line
		}
		lines = append(lines, line)
	})

	return strings.Join(lines, "\n")
}

// collapseWhitespace trims text and folds internal whitespace runs into
// single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasRelevantClass(classes string) bool {
	if classes == "" {
		return false
	}
	lower := strings.ToLower(classes)
	for _, hint := range relevantClassHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
