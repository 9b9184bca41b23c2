package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
)

// Ensure Extractor implements llmstxt.Extractor at compile time.
var _ llmstxt.Extractor = (*Extractor)(nil)

// BuiltinSelectors are the content selectors tried, in order, when no
// content selector is configured.
var BuiltinSelectors = []string{
	".md-content__inner",
	`[role="main"]`,
	"article",
	"main",
}

// Extractor locates the content region and title of built documentation
// pages. Extract cleans the document in place, so each call needs its own
// parsed tree.
type Extractor struct {
	builtin []builtinSelector
	titles  []titleStrategy
}

type builtinSelector struct {
	source  string
	matcher cascadia.Selector
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	builtin := make([]builtinSelector, len(BuiltinSelectors))
	for i, s := range BuiltinSelectors {
		builtin[i] = builtinSelector{source: s, matcher: cascadia.MustCompile(s)}
	}
	return &Extractor{
		builtin: builtin,
		titles:  defaultTitleStrategies(),
	}
}

// CompileSelector parses a CSS selector. Returns ECONFIG if it is invalid.
func CompileSelector(s string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(s)
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "invalid content selector %q: %v", s, err)
	}
	return sel, nil
}

// Extract cleans doc, then resolves its title and content region.
func (e *Extractor) Extract(root *html.Node, opts llmstxt.ExtractOptions) (*llmstxt.ExtractResult, error) {
	if root == nil {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "nil document")
	}

	doc := goquery.NewDocumentFromNode(root)
	clean(doc)

	result := &llmstxt.ExtractResult{}
	if err := e.selectContent(doc, opts, result); err != nil {
		return nil, err
	}
	result.Title, result.TitleSource = e.resolveTitle(doc, opts)
	return result, nil
}

// selectContent runs the content strategies. A configured selector is the
// only one tried.
func (e *Extractor) selectContent(doc *goquery.Document, opts llmstxt.ExtractOptions, result *llmstxt.ExtractResult) error {
	if opts.Selector != "" {
		sel, err := CompileSelector(opts.Selector)
		if err != nil {
			return err
		}
		match := doc.FindMatcher(sel).First()
		if match.Length() == 0 {
			return llmstxt.Errorf(llmstxt.EEXTRACT, "content selector %q matched nothing in %s", opts.Selector, opts.Path)
		}
		result.Content = match.Nodes[0]
		result.ContentSource = llmstxt.ContentFromSelector
		result.Selector = opts.Selector
		return nil
	}

	for _, b := range e.builtin {
		if match := doc.FindMatcher(b.matcher).First(); match.Length() > 0 {
			result.Content = match.Nodes[0]
			result.ContentSource = llmstxt.ContentFromBuiltin
			result.Selector = b.source
			return nil
		}
	}

	result.Content = doc.Nodes[0]
	if body := doc.Find("body").First(); body.Length() > 0 {
		result.Content = body.Nodes[0]
	}
	result.ContentSource = llmstxt.ContentFromDocument
	return nil
}
