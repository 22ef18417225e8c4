package vcfolio

import "net/url"

// Company is a single extracted portfolio-company record.
//
// URL is the identity of the record within a run and the only required
// field; everything else may be empty. An empty optional field is an
// expected outcome, not an error. Records are constructed once from
// validated extractor output and are never updated or merged.
type Company struct {
	URL         string `json:"url" csv:"url"`
	Name        string `json:"name" csv:"name"`
	Description string `json:"description" csv:"description"`
	Source      string `json:"source" csv:"source"`
	Location    string `json:"location" csv:"location"`
	Domain      string `json:"domain" csv:"domain"`
}

// Validate returns an error unless the record carries a well-formed
// absolute http(s) URL. A record that fails this check must not be emitted.
func (c *Company) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "company URL required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return Errorf(EINVALID, "company URL %q is not a valid URL", c.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "company URL %q must use http or https", c.URL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "company URL %q has no host", c.URL)
	}
	return nil
}
