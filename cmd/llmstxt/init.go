package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/yaml"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	info, err := os.Stat(c.Config)
	if errors.Is(err, fs.ErrNotExist) {
		return llmstxt.Errorf(llmstxt.ENOTFOUND, "config file not found: %s", c.Config)
	}
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Config)
	if err != nil {
		return err
	}

	out, err := yaml.InitConfig(data, c.Force)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Config, out, info.Mode().Perm()); err != nil {
		return err
	}

	deps.printf("Added llmstxt plugin to %s\n", c.Config)
	deps.verbosef("Uncomment the example sections and markdown_description to customize the output.\n")
	return nil
}
