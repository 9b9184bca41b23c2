package llmstxt

import "strings"

// Defaults applied when the site config leaves a value unset.
const (
	DefaultSiteName   = "Documentation"
	DefaultFullOutput = "llms-full.txt"

	// IndexOutput is the file name of the index artifact.
	IndexOutput = "llms.txt"
)

// URLStyle selects how page paths map to public URLs and output files.
type URLStyle int

// Supported URL styles.
const (
	// URLStyleDirectory serves page.html from page/ (page/index.html).
	URLStyleDirectory URLStyle = iota
	// URLStyleFlat serves page.html directly.
	URLStyleFlat
)

// String returns the name of the URL style.
func (s URLStyle) String() string {
	switch s {
	case URLStyleDirectory:
		return "directory"
	case URLStyleFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// Config is the normalized site metadata the pipeline runs against.
// It is treated as read-only once loaded.
type Config struct {
	SiteName            string
	SiteDescription     string
	SiteURL             string
	MarkdownDescription string
	FullOutput          string
	ContentSelector     string

	// Sections lists explicitly configured sections in declaration order.
	// When empty, sections are derived from Nav.
	Sections []Section

	// Nav is the site navigation tree.
	Nav []NavNode

	URLStyle URLStyle
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		SiteName:   DefaultSiteName,
		FullOutput: DefaultFullOutput,
		URLStyle:   URLStyleDirectory,
	}
}

// Validate returns an ECONFIG error if the config cannot drive a build.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SiteName) == "" {
		return Errorf(ECONFIG, "site name required")
	}
	if c.URLStyle != URLStyleDirectory && c.URLStyle != URLStyleFlat {
		return Errorf(ECONFIG, "unknown URL style %d", c.URLStyle)
	}
	if err := CheckPath(c.FullOutput); err != nil {
		return Errorf(ECONFIG, "invalid full_output: %s", ErrorMessage(err))
	}
	if c.FullOutput == IndexOutput {
		return Errorf(ECONFIG, "full_output must not be %q", IndexOutput)
	}
	for _, s := range c.Sections {
		if strings.TrimSpace(s.Name) == "" {
			return Errorf(ECONFIG, "section name required")
		}
		for _, p := range s.Pages {
			if strings.TrimSpace(p) == "" {
				return Errorf(ECONFIG, "section %q contains an empty page entry", s.Name)
			}
		}
	}
	return validateNav(c.Nav)
}

func validateNav(nodes []NavNode) error {
	for _, n := range nodes {
		switch n.Kind {
		case NavPage:
			if n.Path == "" {
				return Errorf(ECONFIG, "nav entry %q has no page path", n.Title)
			}
		case NavGroup:
			if n.Title == "" {
				return Errorf(ECONFIG, "nav group without a title")
			}
			if err := validateNav(n.Children); err != nil {
				return err
			}
		default:
			return Errorf(ECONFIG, "unknown nav node kind %d", n.Kind)
		}
	}
	return nil
}
