// Package fs provides file system access to built sites and generated output.
package fs

import (
	"path/filepath"

	"github.com/fwojciec/llmstxt"
)

// resolve joins a site-relative path onto root after checking that it stays
// inside root.
func resolve(root, rel string) (string, error) {
	if err := llmstxt.CheckPath(rel); err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}
