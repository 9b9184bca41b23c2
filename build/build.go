// Package build generates llms.txt artifacts from a built documentation site.
// It coordinates section resolution, page reading, extraction, conversion
// and assembly.
package build

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once when
// Concurrency is unset.
const DefaultConcurrency = 4

// Builder turns a site and its config into a BuildResult.
type Builder struct {
	Site      llmstxt.Site
	Extractor llmstxt.Extractor
	Converter llmstxt.Converter

	// Expander, if set, expands glob page entries against the site's pages.
	Expander llmstxt.SectionExpander

	Concurrency int

	// Progress, if set, is called after each page is processed.
	Progress llmstxt.BuildProgressFunc
}

// job is a page scheduled for processing.
type job struct {
	position int
	section  string
	entry    string
	htmlPath string
}

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position int
	page     *llmstxt.Page
	err      error
}

// Build generates the artifacts for cfg. Nothing is written; the caller
// persists the result.
//
// A page that cannot be read, extracted or converted is left out of every
// artifact and recorded in Failures. Configuration errors, including an
// invalid content selector, abort the build.
func (b *Builder) Build(ctx context.Context, cfg *llmstxt.Config) (*llmstxt.BuildResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sections, err := llmstxt.ResolveSections(cfg)
	if err != nil {
		return nil, err
	}
	if sections, err = b.expand(ctx, sections); err != nil {
		return nil, err
	}

	jobs, failures := plan(sections, cfg.URLStyle)
	results, err := b.process(ctx, cfg, jobs)
	if err != nil {
		return nil, err
	}

	// Assemble in declaration order
	var pageSections []llmstxt.PageSection
	for i, j := range jobs {
		r := results[i]
		if r.err != nil {
			failures = append(failures, llmstxt.PageFailure{Path: j.entry, Err: r.err})
			continue
		}
		if n := len(pageSections); n == 0 || pageSections[n-1].Name != j.section {
			pageSections = append(pageSections, llmstxt.PageSection{Name: j.section})
		}
		ps := &pageSections[len(pageSections)-1]
		ps.Pages = append(ps.Pages, r.page)
	}

	result := llmstxt.Assemble(cfg, pageSections)
	result.Failures = failures
	result.Digest = digest(result)
	return result, nil
}

// expand replaces pattern entries when an Expander is configured and any
// entry needs it.
func (b *Builder) expand(ctx context.Context, sections []llmstxt.Section) ([]llmstxt.Section, error) {
	if b.Expander == nil || !hasPattern(sections) {
		return sections, nil
	}
	pages, err := b.Site.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list site pages: %w", err)
	}
	expanded, err := b.Expander.Expand(sections, pages)
	if err != nil {
		return nil, err
	}
	return llmstxt.DedupePages(expanded, nil), nil
}

func hasPattern(sections []llmstxt.Section) bool {
	for _, s := range sections {
		for _, p := range s.Pages {
			if llmstxt.HasPattern(p) {
				return true
			}
		}
	}
	return false
}

// plan maps every entry to its HTML file and drops entries that resolve to
// the same file as a later one. Entries that cannot be mapped are returned
// as failures.
func plan(sections []llmstxt.Section, style llmstxt.URLStyle) ([]job, []llmstxt.PageFailure) {
	htmlPaths := make(map[string]string)
	var failures []llmstxt.PageFailure
	for _, s := range sections {
		for _, entry := range s.Pages {
			if _, ok := htmlPaths[entry]; ok {
				continue
			}
			p, err := llmstxt.SourceHTMLPath(entry, style)
			if err != nil {
				failures = append(failures, llmstxt.PageFailure{Path: entry, Err: err})
				p = ""
			}
			htmlPaths[entry] = p
		}
	}

	sections = llmstxt.DedupePages(sections, func(entry string) string {
		if p := htmlPaths[entry]; p != "" {
			return p
		}
		return "\x00" + entry
	})

	var jobs []job
	for _, s := range sections {
		for _, entry := range s.Pages {
			if htmlPaths[entry] == "" {
				continue
			}
			jobs = append(jobs, job{
				position: len(jobs),
				section:  s.Name,
				entry:    entry,
				htmlPath: htmlPaths[entry],
			})
		}
	}
	return jobs, failures
}

// process runs jobs concurrently and returns their results by position.
func (b *Builder) process(ctx context.Context, cfg *llmstxt.Config, jobs []job) ([]pageResult, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(jobs))
	var groupErr error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, j := range jobs {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				r := b.processPage(gctx, cfg, j)
				resultCh <- r
				if llmstxt.ErrorCode(r.err) == llmstxt.ECONFIG {
					return r.err
				}
				return nil
			})
		}
		groupErr = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	var completed atomic.Int64
	results := make([]pageResult, len(jobs))
	for r := range resultCh {
		n := completed.Add(1)
		results[r.position] = r
		if b.Progress != nil {
			b.Progress(llmstxt.BuildProgress{
				Path:      jobs[r.position].entry,
				Completed: int(n),
				Total:     len(jobs),
				Error:     r.err,
			})
		}
	}

	if groupErr != nil {
		return nil, groupErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// processPage reads, extracts and converts a single page.
func (b *Builder) processPage(ctx context.Context, cfg *llmstxt.Config, j job) pageResult {
	result := pageResult{position: j.position}

	data, err := b.Site.ReadPage(ctx, j.htmlPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", j.htmlPath, err)
		return result
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		result.err = llmstxt.Errorf(llmstxt.EEXTRACT, "failed to parse %s: %v", j.htmlPath, err)
		return result
	}

	extracted, err := b.Extractor.Extract(doc, llmstxt.ExtractOptions{
		Path:     j.entry,
		Selector: cfg.ContentSelector,
		SiteName: cfg.SiteName,
		NavTitle: llmstxt.NavTitle(cfg.Nav, j.entry),
	})
	if err != nil {
		result.err = err
		return result
	}

	markdown, err := b.Converter.Convert(extracted.Content)
	if err != nil {
		result.err = err
		return result
	}

	url, outputPath, err := llmstxt.MapURL(j.htmlPath, cfg.URLStyle)
	if err != nil {
		result.err = err
		return result
	}

	result.page = &llmstxt.Page{
		Path:        j.entry,
		HTMLPath:    j.htmlPath,
		Section:     j.section,
		Title:       extracted.Title,
		TitleSource: extracted.TitleSource,
		URL:         llmstxt.PageURL(cfg.SiteURL, url),
		OutputPath:  outputPath,
		Content:     markdown,
		ContentHash: contentHash(markdown),
	}
	return result
}

// digest hashes every artifact so that identical builds compare equal.
func digest(r *llmstxt.BuildResult) string {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	write(r.Index)
	write(r.FullOutput)
	write(r.Full)
	for _, f := range r.Files {
		write(f.Path)
		write(f.Content)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
