package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/llmstxt"
)

// Ensure Site implements llmstxt.Site at compile time.
var _ llmstxt.Site = (*Site)(nil)

// Site reads a built documentation site from a directory.
type Site struct {
	dir string
}

// NewSite creates a new Site rooted at dir.
func NewSite(dir string) *Site {
	return &Site{dir: dir}
}

// Dir returns the site directory.
func (s *Site) Dir() string {
	return s.dir
}

// Check returns ENOTFOUND unless the site directory exists.
func (s *Site) Check() error {
	info, err := os.Stat(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return llmstxt.Errorf(llmstxt.ENOTFOUND, "site directory not found: %s", s.dir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return llmstxt.Errorf(llmstxt.EINVALID, "site path is not a directory: %s", s.dir)
	}
	return nil
}

// ReadPage returns the HTML of a site-relative page.
func (s *Site) ReadPage(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := resolve(s.dir, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "page not found in site: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ListPages returns the slash-separated paths of all HTML files in the
// site, sorted.
func (s *Site) ListPages(ctx context.Context) ([]string, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}

	var pages []string
	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(pages)
	return pages, nil
}
