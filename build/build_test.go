package build_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/build"
	"github.com/fwojciec/llmstxt/doublestar"
	"github.com/fwojciec/llmstxt/goquery"
	"github.com/fwojciec/llmstxt/htmltomarkdown"
	"github.com/fwojciec/llmstxt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// mkdocsPage renders a page the way the Material theme lays it out.
func mkdocsPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>%s - My Docs</title></head>
<body>
<nav class="md-nav"><a href="/">Home</a></nav>
<div class="md-content"><article class="md-content__inner md-typeset">%s</article></div>
<footer>Made with Material</footer>
</body></html>`, title, body)
}

// memSite is a site backed by a map of HTML files.
func memSite(files map[string]string) *mock.Site {
	return &mock.Site{
		ReadPageFn: func(ctx context.Context, path string) ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			content, ok := files[path]
			if !ok {
				return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "page not found in site: %s", path)
			}
			return []byte(content), nil
		},
		ListPagesFn: func(context.Context) ([]string, error) {
			var pages []string
			for p := range files {
				pages = append(pages, p)
			}
			return pages, nil
		},
	}
}

func newBuilder(site llmstxt.Site) *build.Builder {
	return &build.Builder{
		Site:      site,
		Extractor: goquery.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Expander:  doublestar.NewExpander(),
	}
}

func siteConfig(sections ...llmstxt.Section) *llmstxt.Config {
	cfg := llmstxt.NewConfig()
	cfg.SiteName = "My Docs"
	cfg.SiteDescription = "Docs for things."
	cfg.Sections = sections
	return cfg
}

var basicSite = map[string]string{
	"index.html":              mkdocsPage("Home", `<h1 id="home">Home<a class="headerlink" href="#home">¶</a></h1><p>Welcome.</p>`),
	"install/index.html":      mkdocsPage("Install", `<h1>Install</h1><pre><code class="language-bash">pip install thing</code></pre>`),
	"guide/basics/index.html": mkdocsPage("Basics", `<h1>Basics</h1><ul><li>One</li><li>Two</li></ul>`),
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("builds all three artifacts", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig(
			llmstxt.Section{Name: "Start", Pages: []string{"index.md", "install.md"}},
			llmstxt.Section{Name: "Guide", Pages: []string{"guide/basics.md"}},
		)

		result, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)

		require.NoError(t, err)
		assert.Empty(t, result.Failures)
		assert.Equal(t, "# My Docs\n\n"+
			"> Docs for things.\n\n"+
			"## Start\n\n"+
			"- [Home](index.md)\n"+
			"- [Install](install/index.md)\n\n"+
			"## Guide\n\n"+
			"- [Basics](guide/basics/index.md)\n", result.Index)

		assert.Equal(t, "# My Docs\n\n"+
			"> Docs for things.\n\n"+
			"## Home\n\n# Home\n\nWelcome.\n\n"+
			"## Install\n\n# Install\n\n```bash\npip install thing\n```\n\n"+
			"## Basics\n\n# Basics\n\n- One\n- Two\n", result.Full)

		require.Len(t, result.Files, 3)
		assert.Equal(t, "index.md", result.Files[0].Path)
		assert.Equal(t, "install/index.md", result.Files[1].Path)
		assert.Equal(t, "guide/basics/index.md", result.Files[2].Path)
		content, ok := result.File("guide/basics/index.md")
		require.True(t, ok)
		assert.Equal(t, "# Basics\n\n- One\n- Two", content)
		assert.Equal(t, 3, result.Pages())
		assert.NotEmpty(t, result.Digest)
	})

	t.Run("derives sections and titles from the nav", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig()
		cfg.Nav = []llmstxt.NavNode{
			llmstxt.PageRef("Welcome", "index.md"),
			llmstxt.NamedGroup("Guide",
				llmstxt.PageRef("", "install.md"),
				llmstxt.NamedGroup("Deep", llmstxt.PageRef("The Basics", "guide/basics.md")),
			),
		}

		result, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)

		require.NoError(t, err)
		assert.Contains(t, result.Index, "## Pages\n\n- [Welcome](index.md)\n")
		assert.Contains(t, result.Index, "## Guide\n\n- [Guide](install/index.md)\n- [The Basics](guide/basics/index.md)\n")
		assert.NotContains(t, result.Index, "## Deep")
	})

	t.Run("uses flat urls and the site url", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"install.md", "index.md"}})
		cfg.URLStyle = llmstxt.URLStyleFlat
		cfg.SiteURL = "https://docs.example.com"
		files := map[string]string{
			"index.html":   mkdocsPage("Home", "<p>h</p>"),
			"install.html": mkdocsPage("Install", "<p>i</p>"),
		}

		result, err := newBuilder(memSite(files)).Build(context.Background(), cfg)

		require.NoError(t, err)
		assert.Contains(t, result.Index, "- [Install](https://docs.example.com/install.md)\n- [Home](https://docs.example.com/index.md)\n")
		_, ok := result.File("install.md")
		assert.True(t, ok)
	})

	t.Run("unmatched content selector fails only that page", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"index.md", "odd.md", "install.md"}})
		cfg.ContentSelector = "article.md-content__inner"
		files := map[string]string{
			"index.html":         basicSite["index.html"],
			"install/index.html": basicSite["install/index.html"],
			"odd/index.html":     `<html><head><title>Odd</title></head><body><main><p>Custom theme</p></main></body></html>`,
		}

		result, err := newBuilder(memSite(files)).Build(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "odd.md", result.Failures[0].Path)
		assert.Equal(t, llmstxt.EEXTRACT, llmstxt.ErrorCode(result.Failures[0].Err))

		assert.NotContains(t, result.Index, "Odd")
		assert.NotContains(t, result.Full, "Custom theme")
		_, ok := result.File("odd/index.md")
		assert.False(t, ok)
		assert.Contains(t, result.Index, "- [Home](index.md)\n- [Install](install/index.md)\n")
	})

	t.Run("invalid content selector aborts the build", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"index.md", "install.md"}})
		cfg.ContentSelector = "article[["

		result, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)

		assert.Nil(t, result)
		assert.Equal(t, llmstxt.ECONFIG, llmstxt.ErrorCode(err))
	})

	t.Run("records missing and unsafe pages as failures", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"../etc/passwd.md", "index.md", "missing.md"}})

		result, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, result.Failures, 2)
		codes := map[string]string{}
		for _, f := range result.Failures {
			codes[f.Path] = llmstxt.ErrorCode(f.Err)
		}
		assert.Equal(t, map[string]string{
			"../etc/passwd.md": llmstxt.EINVALID,
			"missing.md":       llmstxt.ENOTFOUND,
		}, codes)
		assert.Equal(t, 1, result.Pages())
	})

	t.Run("converter failures are per page", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(memSite(basicSite))
		b.Converter = &mock.Converter{
			ConvertFn: func(n *html.Node) (string, error) {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && c.Data == "ul" {
						return "", llmstxt.Errorf(llmstxt.ECONVERT, "cannot convert lists")
					}
				}
				return "body", nil
			},
		}
		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"index.md", "guide/basics.md"}})

		result, err := b.Build(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, llmstxt.ECONVERT, llmstxt.ErrorCode(result.Failures[0].Err))
		assert.Equal(t, 1, result.Pages())
	})

	t.Run("expands glob entries against the site", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig(
			llmstxt.Section{Name: "Start", Pages: []string{"index.md"}},
			llmstxt.Section{Name: "Everything", Pages: []string{"**/index.html"}},
		)

		result, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)

		require.NoError(t, err)
		assert.Empty(t, result.Failures)
		// index.html resolves to the same file as index.md and keeps its
		// later position.
		assert.NotContains(t, result.Index, "## Start")
		assert.Contains(t, result.Index, "## Everything\n\n"+
			"- [Basics](guide/basics/index.md)\n"+
			"- [Home](index.md)\n"+
			"- [Install](install/index.md)\n")
	})

	t.Run("entries naming the same file are kept once", func(t *testing.T) {
		t.Parallel()

		cfg := siteConfig(
			llmstxt.Section{Name: "A", Pages: []string{"install.md"}},
			llmstxt.Section{Name: "B", Pages: []string{"install/index.html", "index.md"}},
		)

		result, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)

		require.NoError(t, err)
		assert.NotContains(t, result.Index, "## A")
		assert.Contains(t, result.Index, "## B\n\n- [Install](install/index.md)\n- [Home](index.md)\n")
		assert.Len(t, result.Files, 2)
	})

	t.Run("rejects invalid config before reading pages", func(t *testing.T) {
		t.Parallel()

		site := &mock.Site{
			ReadPageFn: func(context.Context, string) ([]byte, error) {
				t.Error("no page should be read")
				return nil, nil
			},
		}
		b := newBuilder(site)

		_, err := b.Build(context.Background(), siteConfig())
		assert.Equal(t, llmstxt.ECONFIG, llmstxt.ErrorCode(err))

		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"index.md"}})
		cfg.FullOutput = "../out.txt"
		_, err = b.Build(context.Background(), cfg)
		assert.Equal(t, llmstxt.ECONFIG, llmstxt.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"index.md", "install.md"}})

		_, err := newBuilder(memSite(basicSite)).Build(ctx, cfg)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("reports progress for every page", func(t *testing.T) {
		t.Parallel()

		var (
			mu     sync.Mutex
			events []llmstxt.BuildProgress
		)
		b := newBuilder(memSite(basicSite))
		b.Progress = func(p llmstxt.BuildProgress) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, p)
		}
		cfg := siteConfig(llmstxt.Section{Name: "S", Pages: []string{"index.md", "install.md", "missing.md"}})

		_, err := b.Build(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, events, 3)
		failed := 0
		for i, e := range events {
			assert.Equal(t, i+1, e.Completed)
			assert.Equal(t, 3, e.Total)
			if e.Error != nil {
				failed++
				assert.Equal(t, "missing.md", e.Path)
			}
		}
		assert.Equal(t, 1, failed)
	})
}

func TestBuilder_Build_Order(t *testing.T) {
	t.Parallel()

	// Pages finish in reverse order; output keeps declaration order.
	files := map[string]string{}
	var entries []string
	for i := range 12 {
		name := fmt.Sprintf("p%02d", i)
		files[name+"/index.html"] = mkdocsPage(name, "<p>"+name+"</p>")
		entries = append(entries, name+".md")
	}
	site := memSite(files)
	slow := &mock.Site{
		ReadPageFn: func(ctx context.Context, path string) ([]byte, error) {
			var i int
			_, _ = fmt.Sscanf(path, "p%02d/", &i)
			time.Sleep(time.Duration(12-i) * time.Millisecond)
			return site.ReadPage(ctx, path)
		},
	}

	b := newBuilder(slow)
	b.Concurrency = 6
	result, err := b.Build(context.Background(), siteConfig(llmstxt.Section{Name: "S", Pages: entries}))

	require.NoError(t, err)
	require.Len(t, result.Files, 12)
	for i, f := range result.Files {
		assert.Equal(t, fmt.Sprintf("p%02d/index.md", i), f.Path)
	}
}

func TestBuilder_Build_Idempotent(t *testing.T) {
	t.Parallel()

	cfg := siteConfig(
		llmstxt.Section{Name: "Start", Pages: []string{"index.md", "install.md"}},
		llmstxt.Section{Name: "Guide", Pages: []string{"guide/basics.md"}},
	)

	first, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)
	require.NoError(t, err)
	second, err := newBuilder(memSite(basicSite)).Build(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, first.Index, second.Index)
	assert.Equal(t, first.Full, second.Full)
	assert.Equal(t, first.Files, second.Files)

	changed := map[string]string{}
	for k, v := range basicSite {
		changed[k] = v
	}
	changed["install/index.html"] = mkdocsPage("Install", "<h1>Install</h1><p>Changed.</p>")

	third, err := newBuilder(memSite(changed)).Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first.Digest, third.Digest)
}
