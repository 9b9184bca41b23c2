package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
)

// Ensure LoggingExtractor implements llmstxt.Extractor.
var _ llmstxt.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of the strategies that
// resolved each page.
type LoggingExtractor struct {
	next   llmstxt.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next llmstxt.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(doc *html.Node, opts llmstxt.ExtractOptions) (result *llmstxt.ExtractResult, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Warn("extract",
				"path", opts.Path,
				"selector", opts.Selector,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		e.logger.Debug("extract",
			"path", opts.Path,
			"title", result.Title,
			"title_source", result.TitleSource,
			"content_source", result.ContentSource,
			"selector", result.Selector,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(doc, opts)
}
