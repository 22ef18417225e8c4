// Package vcfolio scrapes venture-capital portfolio pages. It discovers
// links to individual portfolio-company pages, visits each one, and uses
// a generative text model to turn the page content into structured company
// records that are written out as tabular rows.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, gemini/, goquery/).
package vcfolio
