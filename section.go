package llmstxt

import "strings"

// PagesSection is the name of the section collecting top-level nav pages.
const PagesSection = "Pages"

// Section is a named, ordered group of page entries.
type Section struct {
	Name  string
	Pages []string
}

// SectionExpander expands pattern entries in sections against the list of
// pages that exist on the site.
type SectionExpander interface {
	Expand(sections []Section, pages []string) ([]Section, error)
}

// HasPattern reports whether a page entry contains glob metacharacters.
func HasPattern(entry string) bool {
	return strings.ContainsAny(entry, "*?[{")
}

// ResolveSections returns the ordered sections for a site.
//
// Explicitly configured sections take precedence. Otherwise sections are
// derived from the navigation tree: top-level pages are gathered into a
// section named "Pages" and every top-level group becomes a section holding
// all pages beneath it, depth-first. A page listed more than once is kept at
// its last occurrence only.
//
// Returns ECONFIG if the config has neither sections nor a navigation tree.
func ResolveSections(cfg *Config) ([]Section, error) {
	var sections []Section
	switch {
	case len(cfg.Sections) > 0:
		sections = explicitSections(cfg.Sections)
	case len(cfg.Nav) > 0:
		sections = navSections(cfg.Nav)
	default:
		return nil, Errorf(ECONFIG, "no sections configured: add a nav or llmstxt sections to the config")
	}
	return DedupePages(sections, nil), nil
}

// sectionList is an ordered set of sections keyed by name.
type sectionList struct {
	sections []Section
	index    map[string]int
}

func newSectionList() *sectionList {
	return &sectionList{index: make(map[string]int)}
}

// set replaces the pages of a section, keeping the position of an earlier
// definition with the same name.
func (l *sectionList) set(name string, pages []string) {
	if i, ok := l.index[name]; ok {
		l.sections[i].Pages = pages
		return
	}
	l.index[name] = len(l.sections)
	l.sections = append(l.sections, Section{Name: name, Pages: pages})
}

// add appends a page to a section, creating it if needed.
func (l *sectionList) add(name, page string) {
	if i, ok := l.index[name]; ok {
		l.sections[i].Pages = append(l.sections[i].Pages, page)
		return
	}
	l.set(name, []string{page})
}

func explicitSections(in []Section) []Section {
	l := newSectionList()
	for _, s := range in {
		l.set(s.Name, append([]string(nil), s.Pages...))
	}
	return l.sections
}

func navSections(nav []NavNode) []Section {
	l := newSectionList()
	for _, n := range nav {
		switch n.Kind {
		case NavPage:
			if !isExternal(n.Path) {
				l.add(PagesSection, n.Path)
			}
		case NavGroup:
			if pages := collectPages(n.Children, nil); len(pages) > 0 {
				l.set(n.Title, pages)
			}
		}
	}
	return l.sections
}

// DedupePages drops every occurrence of a page except the last one and
// removes sections left empty. Pages are compared by key(page); a nil key
// compares entries as written.
func DedupePages(sections []Section, key func(string) string) []Section {
	if key == nil {
		key = func(s string) string { return s }
	}

	type position struct{ section, page int }
	last := make(map[string]position)
	for si, s := range sections {
		for pi, p := range s.Pages {
			last[key(p)] = position{si, pi}
		}
	}

	out := make([]Section, 0, len(sections))
	for si, s := range sections {
		var pages []string
		for pi, p := range s.Pages {
			if last[key(p)] == (position{si, pi}) {
				pages = append(pages, p)
			}
		}
		if len(pages) == 0 {
			continue
		}
		out = append(out, Section{Name: s.Name, Pages: pages})
	}
	return out
}
