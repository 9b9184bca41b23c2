package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingSite implements llmstxt.Site.
var _ llmstxt.Site = (*LoggingSite)(nil)

// LoggingSite wraps a Site with debug logging.
type LoggingSite struct {
	next   llmstxt.Site
	logger *slog.Logger
}

// NewLoggingSite creates a new LoggingSite.
func NewLoggingSite(next llmstxt.Site, logger *slog.Logger) *LoggingSite {
	return &LoggingSite{next: next, logger: logger}
}

// ReadPage delegates to the wrapped site and logs the read.
func (s *LoggingSite) ReadPage(ctx context.Context, path string) (data []byte, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "read page",
			"path", path,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadPage(ctx, path)
}

// ListPages delegates to the wrapped site and logs the listing.
func (s *LoggingSite) ListPages(ctx context.Context) (pages []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list pages",
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListPages(ctx)
}
