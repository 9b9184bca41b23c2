package goquery

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmstxt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleStrategy resolves a page title from one source. An empty result
// defers to the next strategy.
type titleStrategy struct {
	source  llmstxt.TitleSource
	resolve func(doc *goquery.Document, opts llmstxt.ExtractOptions) string
}

func defaultTitleStrategies() []titleStrategy {
	return []titleStrategy{
		{llmstxt.TitleFromNav, navTitle},
		{llmstxt.TitleFromTitleTag, titleTag},
		{llmstxt.TitleFromHeading, firstHeading},
		{llmstxt.TitleFromFilename, func(_ *goquery.Document, opts llmstxt.ExtractOptions) string {
			return FilenameTitle(opts.Path)
		}},
	}
}

func (e *Extractor) resolveTitle(doc *goquery.Document, opts llmstxt.ExtractOptions) (string, llmstxt.TitleSource) {
	for _, s := range e.titles {
		if title := s.resolve(doc, opts); title != "" {
			return title, s.source
		}
	}
	return "", llmstxt.TitleFromFilename
}

func navTitle(_ *goquery.Document, opts llmstxt.ExtractOptions) string {
	return normalizeSpace(opts.NavTitle)
}

// titleTag returns the <title> text with a trailing site name suffix removed.
func titleTag(doc *goquery.Document, opts llmstxt.ExtractOptions) string {
	title := normalizeSpace(doc.Find("title").First().Text())
	if opts.SiteName == "" {
		return title
	}
	for _, sep := range []string{" - ", " | "} {
		if stripped, ok := strings.CutSuffix(title, sep+opts.SiteName); ok {
			return strings.TrimSpace(stripped)
		}
	}
	return title
}

func firstHeading(doc *goquery.Document, _ llmstxt.ExtractOptions) string {
	return normalizeSpace(doc.Find("h1").First().Text())
}

// FilenameTitle derives a title from a page path: the final segment without
// its extension, or the parent directory for index pages, with dashes and
// underscores turned into spaces and each word capitalized.
func FilenameTitle(p string) string {
	p = strings.Trim(strings.ReplaceAll(p, `\`, "/"), "/")
	if p == "" {
		return ""
	}
	name := path.Base(p)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "index" || name == "README" {
		if dir := path.Dir(p); dir != "." {
			name = path.Base(dir)
		}
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Title(language.English).String(normalizeSpace(name))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
