// Package goquery provides HTML processing implementations built on
// PuerkitoBio/goquery: candidate-link harvesting and content normalization.
package goquery

import (
	"regexp"
	"strings"

	"vcfolio"

	"github.com/PuerkitoBio/goquery"
)

// quotedURLPattern matches quoted absolute http(s) URLs and quoted
// root-relative paths inside attribute values and script text.
var quotedURLPattern = regexp.MustCompile(`['"](https?://[^'"]+|/[^'"]+)['"]`)

// dataURLAttrs are the data-* attributes mined for navigation targets.
var dataURLAttrs = map[string]bool{
	"data-url":      true,
	"data-href":     true,
	"data-link":     true,
	"data-redirect": true,
	"data-navigate": true,
}

// Ensure Harvester implements vcfolio.LinkHarvester at compile time.
var _ vcfolio.LinkHarvester = (*Harvester)(nil)

// Harvester extracts candidate link strings from rendered markup.
//
// Plain anchors are not enough on JS-heavy portfolio sites: navigation is
// routinely hidden in onclick handlers, data-* attributes, and inline
// script text, so all four sources are scanned on every page.
type Harvester struct{}

// NewHarvester creates a new Harvester.
func NewHarvester() *Harvester {
	return &Harvester{}
}

// HarvestLinks returns the duplicate-free candidate links found in the
// markup, in first-seen order. A parse failure yields an empty set.
func (h *Harvester) HarvestLinks(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	add := func(candidate string) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || seen[candidate] {
			return
		}
		seen[candidate] = true
		links = append(links, candidate)
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		for _, attr := range node.Attr {
			switch {
			case attr.Key == "href":
				add(attr.Val)
			case strings.HasPrefix(attr.Key, "on"):
				for _, m := range quotedURLPattern.FindAllStringSubmatch(attr.Val, -1) {
					add(m[1])
				}
			case dataURLAttrs[attr.Key]:
				add(attr.Val)
			}
		}
	})

	// Script bodies are discarded everywhere else in the pipeline but are
	// mined here: SPA routing tables often carry the only copy of a link.
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		for _, m := range quotedURLPattern.FindAllStringSubmatch(sel.Text(), -1) {
			add(m[1])
		}
	})

	return links
}
