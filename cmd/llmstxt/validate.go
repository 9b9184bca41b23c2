package main

import (
	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/goquery"
	"github.com/fwojciec/llmstxt/yaml"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	sections, cfg, err := c.check()
	if err != nil {
		deps.errorf("Config invalid: %s\n", c.Config)
		return err
	}

	pages := 0
	for _, s := range sections {
		pages += len(s.Pages)
	}

	deps.printf("Config valid: %s\n", c.Config)
	deps.printf("  Site: %s\n", cfg.SiteName)
	deps.printf("  Sections: %d\n", len(sections))
	deps.printf("  Pages: %d\n", pages)

	for _, s := range sections {
		deps.verbosef("  %s: %d pages\n", s.Name, len(s.Pages))
		for _, p := range s.Pages {
			deps.verbosef("    - %s\n", p)
		}
	}
	return nil
}

func (c *ValidateCmd) check() ([]llmstxt.Section, *llmstxt.Config, error) {
	cfg, err := yaml.LoadConfig(c.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.ContentSelector != "" {
		if _, err := goquery.CompileSelector(cfg.ContentSelector); err != nil {
			return nil, nil, err
		}
	}
	sections, err := llmstxt.ResolveSections(cfg)
	if err != nil {
		return nil, nil, err
	}
	return sections, cfg, nil
}
