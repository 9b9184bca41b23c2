package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Quiet   bool
	Verbose bool
}

// printf writes to stdout unless quiet.
func (d *Dependencies) printf(format string, args ...any) {
	if !d.Quiet {
		fmt.Fprintf(d.Stdout, format, args...)
	}
}

// verbosef writes to stdout in verbose mode only.
func (d *Dependencies) verbosef(format string, args ...any) {
	if d.Verbose {
		fmt.Fprintf(d.Stdout, format, args...)
	}
}

// errorf writes to stderr unless quiet.
func (d *Dependencies) errorf(format string, args ...any) {
	if !d.Quiet {
		fmt.Fprintf(d.Stderr, format, args...)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Quiet   bool             `short:"q" help:"Suppress output (exit code only)"`
	Verbose bool             `short:"v" help:"Show detailed progress"`
	Version kong.VersionFlag `help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Generate llms.txt and llms-full.txt from a built site"`
	Validate ValidateCmd `cmd:"" help:"Check config file validity"`
	Init     InitCmd     `cmd:"" help:"Add llmstxt plugin config to mkdocs.yml"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Config      string `short:"c" default:"mkdocs.yml" help:"Path to mkdocs.yml config file"`
	SiteDir     string `short:"s" default:"site" help:"Path to built HTML site directory"`
	OutputDir   string `short:"o" help:"Output directory (defaults to site-dir)"`
	DryRun      bool   `short:"n" help:"Preview what would be generated without writing files"`
	Concurrency int    `short:"j" default:"4" help:"Pages processed concurrently"`
	Strict      bool   `help:"Fail when any page could not be processed"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Config string `short:"c" default:"mkdocs.yml" help:"Path to mkdocs.yml config file"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Config string `short:"c" default:"mkdocs.yml" help:"Path to mkdocs.yml config file"`
	Force  bool   `short:"f" help:"Overwrite existing llmstxt section"`
}
