package mock

import "vcfolio"

var _ vcfolio.Converter = (*Converter)(nil)

// Converter is a mock implementation of vcfolio.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
