package llmstxt

import "golang.org/x/net/html"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML content node into normalized Markdown.
	// The node should be a content region (e.g., from an Extractor).
	// Returns ECONVERT if the node cannot be converted.
	Convert(n *html.Node) (string, error)
}
