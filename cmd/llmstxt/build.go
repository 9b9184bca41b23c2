package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/build"
	"github.com/fwojciec/llmstxt/doublestar"
	"github.com/fwojciec/llmstxt/fs"
	"github.com/fwojciec/llmstxt/goquery"
	"github.com/fwojciec/llmstxt/htmltomarkdown"
	llmslog "github.com/fwojciec/llmstxt/slog"
	"github.com/fwojciec/llmstxt/yaml"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	cfg, err := yaml.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if cfg.ContentSelector != "" {
		if _, err := goquery.CompileSelector(cfg.ContentSelector); err != nil {
			return err
		}
	}

	site := fs.NewSite(c.SiteDir)
	if err := site.Check(); err != nil {
		deps.errorf("Run 'mkdocs build' first to generate the site.\n")
		return err
	}

	outputDir := c.OutputDir
	if outputDir == "" {
		outputDir = c.SiteDir
	}

	builder := &build.Builder{
		Site:        llmslog.NewLoggingSite(site, deps.Logger),
		Extractor:   llmslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger),
		Converter:   llmslog.NewLoggingConverter(htmltomarkdown.NewConverter(), deps.Logger),
		Expander:    doublestar.NewExpander(),
		Concurrency: c.Concurrency,
	}
	if deps.Verbose {
		builder.Progress = func(p llmstxt.BuildProgress) {
			status := "ok"
			if p.Error != nil {
				status = "failed"
			}
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s %s\n", p.Completed, p.Total, build.TruncatePath(p.Path, 60), status)
		}
	}

	result, err := builder.Build(deps.Ctx, cfg)
	if err != nil {
		return err
	}

	action := "Generated"
	if c.DryRun {
		action = "Would generate"
	} else if err := save(deps, fs.NewOutputStore(outputDir), result); err != nil {
		return err
	}

	deps.printf("%s %s (%s)\n", action, filepath.Join(outputDir, "llms.txt"), build.FormatBytes(len(result.Index)))
	deps.printf("%s %s (%s)\n", action, filepath.Join(outputDir, result.FullOutput), build.FormatBytes(len(result.Full)))
	deps.printf("%s %d markdown files\n", action, len(result.Files))
	deps.verbosef("Pages: %d\n", result.Pages())
	deps.verbosef("Digest: %s\n", result.Digest)

	for _, w := range result.Warnings {
		deps.errorf("warning: %s\n", w)
	}
	if len(result.Failures) > 0 {
		deps.errorf("Skipped %d pages:\n", len(result.Failures))
		for _, f := range result.Failures {
			deps.errorf("  - %s: %s\n", f.Path, errorText(f.Err))
		}
		if c.Strict {
			return llmstxt.Errorf(llmstxt.EEXTRACT, "%d pages could not be processed", len(result.Failures))
		}
	}

	return nil
}

// save writes every artifact through store. Nothing becomes visible unless
// all writes succeed.
func save(deps *Dependencies, store llmstxt.OutputStore, result *llmstxt.BuildResult) error {
	write := func() error {
		if err := store.Save(deps.Ctx, "llms.txt", result.Index); err != nil {
			return err
		}
		if err := store.Save(deps.Ctx, result.FullOutput, result.Full); err != nil {
			return err
		}
		for _, f := range result.Files {
			if err := store.Save(deps.Ctx, f.Path, f.Content); err != nil {
				return err
			}
		}
		return store.Commit()
	}

	if err := write(); err != nil {
		if abortErr := store.Abort(); abortErr != nil {
			deps.Logger.Warn("abort output", "error", abortErr)
		}
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
