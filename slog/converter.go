package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
)

// Ensure LoggingConverter implements llmstxt.Converter.
var _ llmstxt.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   llmstxt.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next llmstxt.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the operation.
func (c *LoggingConverter) Convert(n *html.Node) (markdown string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		c.logger.Log(context.Background(), level, "convert",
			"bytes", len(markdown),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(n)
}
