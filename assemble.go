package llmstxt

import (
	"fmt"
	"strings"
)

// PageSection is a section with its successfully processed pages.
type PageSection struct {
	Name  string
	Pages []*Page
}

// File is a per-page Markdown artifact.
type File struct {
	Path    string
	Content string
}

// PageFailure records a page left out of the build.
type PageFailure struct {
	Path string
	Err  error
}

// BuildResult holds the generated artifacts. Nothing is written to disk;
// callers persist it through an OutputStore.
type BuildResult struct {
	// Index is the content of llms.txt.
	Index string

	// Full is the full-text artifact, written to FullOutput.
	Full       string
	FullOutput string

	// Files holds one Markdown file per page, in page order.
	Files []File

	Failures []PageFailure
	Warnings []string

	// Digest identifies the artifacts; equal inputs give equal digests.
	Digest string

	pages int
}

// Pages returns the number of pages in the index.
func (r *BuildResult) Pages() int {
	return r.pages
}

// File returns the content of the per-page file at path.
func (r *BuildResult) File(path string) (string, bool) {
	for _, f := range r.Files {
		if f.Path == path {
			return f.Content, true
		}
	}
	return "", false
}

// Assemble builds the index, full-text and per-page artifacts from processed
// sections. Sections without pages are omitted from the index; pages with an
// empty body are left out of the full text with a warning.
func Assemble(cfg *Config, sections []PageSection) *BuildResult {
	result := &BuildResult{FullOutput: cfg.FullOutput}

	index := []string{"# " + cfg.SiteName, ""}
	full := []string{"# " + cfg.SiteName, ""}

	if desc := strings.TrimSpace(cfg.SiteDescription); desc != "" {
		quoted := "> " + strings.ReplaceAll(desc, "\n", "\n> ")
		index = append(index, quoted, "")
		full = append(full, quoted, "")
	}
	if desc := strings.TrimSpace(cfg.MarkdownDescription); desc != "" {
		index = append(index, desc, "")
	}

	type owner struct {
		file int
		page string
	}
	files := make(map[string]owner)
	for _, section := range sections {
		if len(section.Pages) == 0 {
			continue
		}

		index = append(index, "## "+section.Name, "")
		for _, page := range section.Pages {
			index = append(index, fmt.Sprintf("- [%s](%s)", escapeLinkText(page.Title), page.URL))
			result.pages++

			if page.Content != "" {
				full = append(full, "## "+page.Title, "", page.Content, "")
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("no markdown content extracted from %s; left out of %s", page.HTMLPath, cfg.FullOutput))
			}

			if prev, ok := files[page.OutputPath]; ok {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s and %s both map to %s; keeping %s", prev.page, page.Path, page.OutputPath, page.Path))
				result.Files[prev.file].Content = page.Content
				files[page.OutputPath] = owner{prev.file, page.Path}
				continue
			}
			files[page.OutputPath] = owner{len(result.Files), page.Path}
			result.Files = append(result.Files, File{Path: page.OutputPath, Content: page.Content})
		}
		index = append(index, "")
	}

	result.Index = strings.Join(index, "\n")
	result.Full = strings.Join(full, "\n")
	return result
}

// escapeLinkText escapes characters that break Markdown link text.
func escapeLinkText(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}
