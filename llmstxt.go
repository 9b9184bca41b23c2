// Package llmstxt turns a statically built documentation site into a text
// corpus for language models: an llms.txt index, a single full-text file and
// one Markdown file per HTML page.
//
// This package contains domain types, interfaces and the pure parts of the
// pipeline (section resolution, URL mapping, assembly) following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, yaml/).
package llmstxt
