// Package scrape provides the portfolio scraping pipeline: link
// classification, company extraction, and the sequential orchestration
// that ties fetching, harvesting, and persistence together.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"vcfolio"
)

const classifierSystem = "You are a URL filtering tool. Return only valid company URLs."

const classifierPromptFormat = `Given the following list of URLs extracted from a portfolio page, filter and return only those that point to portfolio company pages.
The URLs may start with '/portfolio/', '/company/', '/investments/', or similar keywords, and they lead to individual company pages.

Source URL: %s
Extracted URLs:
%s

Return ONLY the valid company URLs, one per line.`

// classifierTemperature keeps filtering near-deterministic.
const classifierTemperature = 0.2

// urlLine matches reply lines that look like a URL: absolute http(s) or
// root-relative. Everything else the model says is discarded.
var urlLine = regexp.MustCompile(`^(https?://|/)`)

// Ensure Classifier implements vcfolio.LinkClassifier at compile time.
var _ vcfolio.LinkClassifier = (*Classifier)(nil)

// Classifier filters harvested candidate links down to company-page URLs
// by asking the model.
type Classifier struct {
	completer vcfolio.Completer
	logger    *slog.Logger
}

// NewClassifier creates a new Classifier. A nil logger discards output.
func NewClassifier(completer vcfolio.Completer, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Classifier{completer: completer, logger: logger}
}

// ClassifyLinks sends all candidates to the model in a single prompt and
// parses its line-oriented reply into absolute, deduplicated company URLs.
// Any model or parse failure is soft: it logs and returns an empty list.
func (c *Classifier) ClassifyLinks(ctx context.Context, candidates []string, sourceURL string) []string {
	if len(candidates) == 0 {
		return nil
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		c.logger.Error("classify: invalid source URL", "url", sourceURL, "err", err)
		return nil
	}

	prompt := fmt.Sprintf(classifierPromptFormat, sourceURL, strings.Join(candidates, "\n"))

	reply, err := c.completer.Complete(ctx, classifierSystem, prompt, classifierTemperature)
	if err != nil {
		c.logger.Error("classify: model call failed", "source", sourceURL, "err", err)
		return nil
	}

	seen := make(map[string]bool)
	var urls []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !urlLine.MatchString(line) {
			continue
		}

		ref, err := url.Parse(line)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref).String()

		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		urls = append(urls, resolved)
	}

	return urls
}
