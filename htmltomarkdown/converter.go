package htmltomarkdown

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
)

// Ensure Converter implements llmstxt.Converter at compile time.
var _ llmstxt.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML content node into normalized Markdown.
// The node is rendered and converted from its serialized form, so the
// caller's tree is left untouched.
func (c *Converter) Convert(n *html.Node) (string, error) {
	if n == nil {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "nil content node")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", llmstxt.Errorf(llmstxt.ECONVERT, "failed to render content: %v", err)
	}

	result, err := c.conv.ConvertString(buf.String())
	if err != nil {
		return "", llmstxt.Errorf(llmstxt.ECONVERT, "failed to convert content: %v", err)
	}

	return Normalize(result), nil
}

// Normalize strips trailing whitespace from every line, collapses runs of
// blank lines into one and trims the result. Hard line breaks become a
// trailing backslash. Blank lines inside fenced code blocks are kept.
func Normalize(md string) string {
	lines := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	var fence string
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")

		if fence != "" {
			if isFenceClose(trimmed, fence) {
				fence = ""
			}
			out = append(out, trimmed)
			blank = false
			continue
		}
		if f := fenceOpen(trimmed); f != "" {
			fence = f
			out = append(out, trimmed)
			blank = false
			continue
		}

		if trimmed == "" {
			if blank {
				continue
			}
			blank = true
			out = append(out, trimmed)
			continue
		}
		blank = false
		if strings.HasSuffix(line, "  ") && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			trimmed += "\\"
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// fenceOpen returns the fence marker that opens a code block on line, or an
// empty string if line is not an opening fence.
func fenceOpen(line string) string {
	s := strings.TrimLeft(line, " ")
	for _, c := range []string{"`", "~"} {
		n := len(s) - len(strings.TrimLeft(s, c))
		if n < 3 {
			continue
		}
		// Backticks are not allowed in a backtick fence's info string.
		if c == "`" && strings.Contains(s[n:], "`") {
			return ""
		}
		return s[:n]
	}
	return ""
}

// isFenceClose reports whether line closes a code block opened with fence.
func isFenceClose(line, fence string) bool {
	s := strings.TrimLeft(line, " ")
	n := len(s) - len(strings.TrimLeft(s, fence[:1]))
	return n >= len(fence) && n == len(s)
}
