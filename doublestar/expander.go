// Package doublestar expands glob page entries against a site's pages.
package doublestar

import (
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/llmstxt"
)

// Ensure Expander implements llmstxt.SectionExpander at compile time.
var _ llmstxt.SectionExpander = (*Expander)(nil)

// Expander replaces pattern entries with the site pages they match.
// Supports single-level (*) and recursive (**) wildcards, character classes
// and {a,b} alternatives.
type Expander struct{}

// NewExpander creates a new Expander.
func NewExpander() *Expander {
	return &Expander{}
}

// Expand returns sections with every pattern entry replaced, in place, by
// the matching pages in lexicographic order. Literal entries are kept as
// written. A pattern matching nothing expands to no pages.
//
// Returns ECONFIG if a pattern is malformed.
func (e *Expander) Expand(sections []llmstxt.Section, pages []string) ([]llmstxt.Section, error) {
	sorted := slices.Clone(pages)
	slices.Sort(sorted)

	out := make([]llmstxt.Section, 0, len(sections))
	for _, s := range sections {
		expanded := make([]string, 0, len(s.Pages))
		for _, entry := range s.Pages {
			if !llmstxt.HasPattern(entry) {
				expanded = append(expanded, entry)
				continue
			}
			if !doublestar.ValidatePattern(entry) {
				return nil, llmstxt.Errorf(llmstxt.ECONFIG, "invalid page pattern %q in section %q", entry, s.Name)
			}
			for _, p := range sorted {
				if doublestar.MatchUnvalidated(entry, p) {
					expanded = append(expanded, p)
				}
			}
		}
		out = append(out, llmstxt.Section{Name: s.Name, Pages: expanded})
	}
	return out, nil
}
