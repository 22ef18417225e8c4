package mock

import "vcfolio"

var _ vcfolio.LinkHarvester = (*LinkHarvester)(nil)

// LinkHarvester is a mock implementation of vcfolio.LinkHarvester.
type LinkHarvester struct {
	HarvestLinksFn func(html string) []string
}

func (h *LinkHarvester) HarvestLinks(html string) []string {
	return h.HarvestLinksFn(html)
}
