package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"vcfolio"
)

const extractorSystem = "You are a data extraction tool. Extract only the requested information and return it in JSON format."

const extractorPromptFormat = `Extract company information from the following webpage content.
Look for:
1. Company name (usually in headings or title)
2. Company description (usually in paragraphs explaining what the company does)
3. Company website URL (look for external links and return ONLY a valid URL starting with http:// or https://)
4. Location (where the company is located, usually a country or a city)
5. Domain (the industry or field the company operates in, such as "Finance", "Biotech", etc.)

Source website: %s

Webpage content:
%s

Return ONLY a valid JSON object with these fields:
{
    "name": "company name",
    "description": "main description of what the company does",
    "url": "company website URL (must start with http:// or https://)",
    "location": "where the company is located, either a country or a city",
    "domain": "the industry or field the company operates in"
}`

// extractorTemperature keeps extraction near-deterministic; this is
// transcription, not generation.
const extractorTemperature = 0.2

// DefaultMaxTextLength bounds how much normalized text goes into the
// prompt. Tail content on long pages is dropped on purpose.
const DefaultMaxTextLength = 4000

// requiredFields are the five semantic fields the model must return.
var requiredFields = []string{"name", "description", "url", "location", "domain"}

// codeFence strips Markdown code-fence wrapping from model replies.
var codeFence = regexp.MustCompile("```(?:json)?")

// Ensure Extractor implements vcfolio.CompanyExtractor at compile time.
var _ vcfolio.CompanyExtractor = (*Extractor)(nil)

// Extractor converts normalized page text into Company records via the
// model, validating and repairing the reply at the boundary. The model is
// not contractually guaranteed to honor any schema, so every parse is best
// effort with a safe fallback.
type Extractor struct {
	completer vcfolio.Completer
	logger    *slog.Logger
	maxText   int
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMaxTextLength caps the page text included in the prompt, in bytes.
// Defaults to DefaultMaxTextLength.
func WithMaxTextLength(n int) ExtractorOption {
	return func(e *Extractor) { e.maxText = n }
}

// NewExtractor creates a new Extractor. A nil logger discards output.
func NewExtractor(completer vcfolio.Completer, logger *slog.Logger, opts ...ExtractorOption) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Extractor{completer: completer, logger: logger, maxText: DefaultMaxTextLength}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract prompts the model with the truncated text and builds a validated
// Company. Model and parse failures degrade to an empty result whose URL
// falls back to pageURL; only a record that fails final validation is
// returned as an error.
func (e *Extractor) Extract(ctx context.Context, text, pageURL, sourceURL string) (*vcfolio.Company, error) {
	fields := e.extractFields(ctx, text, sourceURL)

	// Chosen URL policy: an invalid or missing extracted URL falls back to
	// the page being scraped, never into the record unvalidated.
	companyURL := fields["url"]
	if !strings.HasPrefix(companyURL, "http://") && !strings.HasPrefix(companyURL, "https://") {
		if companyURL != "" {
			e.logger.Warn("extract: invalid URL from model, falling back to page URL",
				"got", companyURL, "page", pageURL)
		}
		companyURL = pageURL
	}

	company := &vcfolio.Company{
		URL:         companyURL,
		Name:        fields["name"],
		Description: fields["description"],
		Source:      sourceURL,
		Location:    fields["location"],
		Domain:      fields["domain"],
	}

	if err := company.Validate(); err != nil {
		return nil, err
	}

	return company, nil
}

// extractFields runs the model call and parses its JSON reply. Every
// failure path returns the empty field map so the caller can still build
// an all-blank record; an all-blank row is an expected outcome.
func (e *Extractor) extractFields(ctx context.Context, text, sourceURL string) map[string]string {
	empty := make(map[string]string, len(requiredFields))

	prompt := buildExtractionPrompt(truncate(text, e.maxText), sourceURL)

	reply, err := e.completer.Complete(ctx, extractorSystem, prompt, extractorTemperature)
	if err != nil {
		e.logger.Error("extract: model call failed", "source", sourceURL, "err", err)
		return empty
	}

	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(reply, ""))

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		e.logger.Error("extract: failed to parse JSON reply", "source", sourceURL, "err", err)
		return empty
	}

	fields := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		value, ok := parsed[name].(string)
		if !ok {
			if _, present := parsed[name]; !present {
				e.logger.Warn("extract: missing field in reply", "field", name)
			}
			continue
		}
		fields[name] = strings.TrimSpace(value)
	}

	return fields
}

func buildExtractionPrompt(text, sourceURL string) string {
	return fmt.Sprintf(extractorPromptFormat, sourceURL, text)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
