package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func TestSite_ReadPage(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, map[string]string{
		"index.html":              "<h1>Home</h1>",
		"guide/basics/index.html": "<h1>Basics</h1>",
	})
	site := fs.NewSite(dir)
	ctx := context.Background()

	t.Run("reads nested pages", func(t *testing.T) {
		t.Parallel()

		data, err := site.ReadPage(ctx, "guide/basics/index.html")

		require.NoError(t, err)
		assert.Equal(t, "<h1>Basics</h1>", string(data))
	})

	t.Run("missing page is not found", func(t *testing.T) {
		t.Parallel()

		_, err := site.ReadPage(ctx, "missing.html")

		assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))
	})

	t.Run("rejects paths leaving the site", func(t *testing.T) {
		t.Parallel()

		_, err := site.ReadPage(ctx, "../secret.html")

		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})
}

func TestSite_ListPages(t *testing.T) {
	t.Parallel()

	t.Run("lists html files sorted with slash paths", func(t *testing.T) {
		t.Parallel()

		dir := writeSite(t, map[string]string{
			"index.html":              "",
			"guide/basics/index.html": "",
			"api.html":                "",
			"assets/style.css":        "",
			"sitemap.xml":             "",
			"guide/basics/index.md":   "",
		})

		pages, err := fs.NewSite(dir).ListPages(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"api.html", "guide/basics/index.html", "index.html"}, pages)
	})

	t.Run("missing site directory is not found", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewSite(filepath.Join(t.TempDir(), "nope")).ListPages(context.Background())

		assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))
	})
}

func TestSite_Check(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, map[string]string{"file.txt": "x"})

	require.NoError(t, fs.NewSite(dir).Check())
	assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(fs.NewSite(filepath.Join(dir, "missing")).Check()))
	assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(fs.NewSite(filepath.Join(dir, "file.txt")).Check()))
}
