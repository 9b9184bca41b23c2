package llmstxt

import "context"

// Page is a documentation page moving through the pipeline.
type Page struct {
	// Path is the page entry as declared in the sections or nav.
	Path string

	// HTMLPath is the site-relative path of the built HTML file.
	HTMLPath string

	Section     string
	Title       string
	TitleSource TitleSource

	// URL is the public URL of the page's Markdown file.
	URL string

	// OutputPath is the Markdown file path relative to the output directory.
	OutputPath string

	Content     string // Markdown
	ContentHash string
}

// BuildProgress reports progress while pages are processed.
type BuildProgress struct {
	Path      string
	Completed int
	Total     int
	Error     error
}

// BuildProgressFunc is called as pages are processed.
type BuildProgressFunc func(BuildProgress)

// Site provides read access to a built documentation site.
type Site interface {
	// ReadPage returns the HTML of a site-relative page.
	// Returns ENOTFOUND if the page does not exist.
	ReadPage(ctx context.Context, path string) ([]byte, error)

	// ListPages returns the site-relative paths of all HTML pages, sorted.
	ListPages(ctx context.Context) ([]string, error)
}

// OutputStore persists build artifacts with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type OutputStore interface {
	Save(ctx context.Context, path string, content string) error
	Commit() error
	Abort() error
}
