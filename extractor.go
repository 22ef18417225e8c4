package vcfolio

import "context"

// CompanyExtractor turns normalized page text into a validated Company
// record using the generative model.
type CompanyExtractor interface {
	// Extract prompts the model with the normalized text and parses its
	// JSON reply. pageURL is the company page being scraped and serves as
	// the fallback when the model returns a missing or malformed URL;
	// sourceURL is the portfolio page recorded as provenance.
	//
	// Model and parse failures degrade to an empty result (all optional
	// fields blank, URL falling back to pageURL) rather than an error.
	// The returned record always passes Company.Validate; a record that
	// cannot be made valid is reported as an error and discarded by the
	// caller.
	Extract(ctx context.Context, text, pageURL, sourceURL string) (*Company, error)
}
