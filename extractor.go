package llmstxt

import "golang.org/x/net/html"

// TitleSource records which strategy produced a page title.
type TitleSource string

// Title strategies in priority order.
const (
	TitleFromNav      TitleSource = "nav"
	TitleFromTitleTag TitleSource = "title"
	TitleFromHeading  TitleSource = "h1"
	TitleFromFilename TitleSource = "filename"
)

// ContentSource records which strategy located the content region.
type ContentSource string

// Content strategies.
const (
	// ContentFromSelector is the configured content selector.
	ContentFromSelector ContentSource = "explicit"
	// ContentFromBuiltin is one of the built-in theme selectors.
	ContentFromBuiltin ContentSource = "builtin"
	// ContentFromDocument is the whole document.
	ContentFromDocument ContentSource = "document"
)

// ExtractOptions controls extraction of a single page.
type ExtractOptions struct {
	// Path is the page entry, used for the filename title fallback.
	Path string

	// Selector is the configured content selector. When set, it is the only
	// selector tried.
	Selector string

	// SiteName is stripped from the end of <title> text.
	SiteName string

	// NavTitle is the title declared for the page in the navigation.
	NavTitle string
}

// ExtractResult holds the extracted content of an HTML page.
type ExtractResult struct {
	// Content is the root of the main content region.
	Content *html.Node

	Title       string
	TitleSource TitleSource

	ContentSource ContentSource

	// Selector is the selector that matched the content region.
	// Empty when the whole document was used.
	Selector string
}

// Extractor locates the main content region of a parsed HTML page and
// resolves the page title.
type Extractor interface {
	// Extract returns the content root and title of doc.
	// Returns EEXTRACT if the configured selector matches nothing and
	// ECONFIG if it is not a valid selector.
	Extract(doc *html.Node, opts ExtractOptions) (*ExtractResult, error)
}
