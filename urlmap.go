package llmstxt

import (
	"path"
	"strings"
)

// CheckPath returns EINVALID unless p is a non-empty relative path that
// stays inside its root.
func CheckPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return Errorf(EINVALID, "empty path")
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || (len(p) > 1 && p[1] == ':') {
		return Errorf(EINVALID, "path must be relative: %q", p)
	}
	for _, seg := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return Errorf(EINVALID, "path must not contain '..': %q", p)
		}
	}
	return nil
}

// SourceHTMLPath returns the site-relative HTML file built for a page entry.
// Entries naming an HTML file are returned as-is. Markdown source entries
// are mapped the way the site generator lays them out: index.md (and
// README.md) become index.html in the same directory, other pages become
// page/index.html in directory style or page.html in flat style.
func SourceHTMLPath(entry string, style URLStyle) (string, error) {
	if err := CheckPath(entry); err != nil {
		return "", err
	}
	p := path.Clean(strings.ReplaceAll(entry, `\`, "/"))

	switch {
	case strings.HasSuffix(p, ".html"):
		return p, nil
	case strings.HasSuffix(p, ".md"):
		stem := strings.TrimSuffix(p, ".md")
		if dir, base := path.Split(stem); base == "index" || base == "README" {
			return dir + "index.html", nil
		}
		if style == URLStyleFlat {
			return stem + ".html", nil
		}
		return stem + "/index.html", nil
	default:
		return "", Errorf(EINVALID, "unsupported page entry %q: expected a .md or .html path", entry)
	}
}

// MapURL returns the public Markdown URL and the output path, relative to the
// output directory, for a site-relative HTML page.
//
//	directory style: foo/index.html -> foo/index.md, foo.html -> foo/index.md
//	flat style:      foo/index.html -> foo.md,       foo.html -> foo.md
//
// The root index.html maps to index.md in both styles.
func MapURL(htmlPath string, style URLStyle) (url string, outputPath string, err error) {
	if err := CheckPath(htmlPath); err != nil {
		return "", "", err
	}
	p := path.Clean(strings.ReplaceAll(htmlPath, `\`, "/"))
	if !strings.HasSuffix(p, ".html") {
		return "", "", Errorf(EINVALID, "not an HTML page: %q", htmlPath)
	}
	stem := strings.TrimSuffix(p, ".html")

	var rel string
	switch {
	case stem == "index":
		rel = "index.md"
	case style == URLStyleFlat:
		rel = strings.TrimSuffix(stem, "/index") + ".md"
	case strings.HasSuffix(stem, "/index"):
		rel = stem + ".md"
	default:
		rel = stem + "/index.md"
	}
	return rel, rel, nil
}

// PageURL joins a relative Markdown URL onto the site URL.
// Returns rel unchanged when siteURL is empty.
func PageURL(siteURL, rel string) string {
	if siteURL == "" {
		return rel
	}
	return strings.TrimSuffix(siteURL, "/") + "/" + rel
}
