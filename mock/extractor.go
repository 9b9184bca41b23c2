package mock

import (
	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
)

var _ llmstxt.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of llmstxt.Extractor.
type Extractor struct {
	ExtractFn func(doc *html.Node, opts llmstxt.ExtractOptions) (*llmstxt.ExtractResult, error)
}

func (e *Extractor) Extract(doc *html.Node, opts llmstxt.ExtractOptions) (*llmstxt.ExtractResult, error) {
	return e.ExtractFn(doc, opts)
}
