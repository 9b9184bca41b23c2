package mock

import (
	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
)

var _ llmstxt.Converter = (*Converter)(nil)

// Converter is a mock implementation of llmstxt.Converter.
type Converter struct {
	ConvertFn func(n *html.Node) (string, error)
}

func (c *Converter) Convert(n *html.Node) (string, error) {
	return c.ConvertFn(n)
}
