package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.Site = (*Site)(nil)

// Site is a mock implementation of llmstxt.Site.
type Site struct {
	ReadPageFn  func(ctx context.Context, path string) ([]byte, error)
	ListPagesFn func(ctx context.Context) ([]string, error)
}

func (s *Site) ReadPage(ctx context.Context, path string) ([]byte, error) {
	return s.ReadPageFn(ctx, path)
}

func (s *Site) ListPages(ctx context.Context) ([]string, error) {
	return s.ListPagesFn(ctx)
}

var _ llmstxt.SectionExpander = (*SectionExpander)(nil)

// SectionExpander is a mock implementation of llmstxt.SectionExpander.
type SectionExpander struct {
	ExpandFn func(sections []llmstxt.Section, pages []string) ([]llmstxt.Section, error)
}

func (e *SectionExpander) Expand(sections []llmstxt.Section, pages []string) ([]llmstxt.Section, error) {
	return e.ExpandFn(sections, pages)
}
