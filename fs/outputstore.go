package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/llmstxt"
)

// Ensure OutputStore implements llmstxt.OutputStore at compile time.
var _ llmstxt.OutputStore = (*OutputStore)(nil)

// OutputStore implements llmstxt.OutputStore with staged writes.
// Files are saved to a staging directory next to the output directory, then
// moved into place on Commit. Files already in the output directory that
// were not saved are left alone.
type OutputStore struct {
	dir string

	mu    sync.Mutex
	saved []string
	seen  map[string]bool
}

// NewOutputStore creates a new OutputStore writing into dir.
func NewOutputStore(dir string) *OutputStore {
	return &OutputStore{
		dir:  dir,
		seen: make(map[string]bool),
	}
}

func (s *OutputStore) stagingDir() string {
	clean := filepath.Clean(s.dir)
	return filepath.Join(filepath.Dir(clean), "."+filepath.Base(clean)+".llmstxt.tmp")
}

// Save stages content for path, relative to the output directory.
func (s *OutputStore) Save(ctx context.Context, path string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := resolve(s.stagingDir(), path)
	if err != nil {
		return err
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seen[path] {
		s.seen[path] = true
		s.saved = append(s.saved, path)
	}
	return nil
}

// Commit moves every staged file into the output directory and removes the
// staging directory. Files being replaced are set aside first; if any move
// fails, the moves already made are undone and the replaced files restored.
func (s *OutputStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var done []move
	for _, rel := range s.saved {
		m, err := s.commitFile(rel)
		if err != nil {
			rollback(done)
			_ = os.RemoveAll(s.backupDir())
			return err
		}
		done = append(done, m)
	}

	s.saved = nil
	clear(s.seen)
	if err := os.RemoveAll(s.backupDir()); err != nil {
		return err
	}
	return os.RemoveAll(s.stagingDir())
}

// move records a committed file and where the file it replaced was kept.
type move struct {
	src, dst, backup string
}

func (s *OutputStore) backupDir() string {
	clean := filepath.Clean(s.dir)
	return filepath.Join(filepath.Dir(clean), "."+filepath.Base(clean)+".llmstxt.bak")
}

// commitFile moves a single staged file into place.
func (s *OutputStore) commitFile(rel string) (move, error) {
	m := move{
		src: filepath.Join(s.stagingDir(), filepath.FromSlash(rel)),
		dst: filepath.Join(s.dir, filepath.FromSlash(rel)),
	}
	if err := os.MkdirAll(filepath.Dir(m.dst), 0755); err != nil {
		return m, err
	}

	if _, err := os.Lstat(m.dst); err == nil {
		m.backup = filepath.Join(s.backupDir(), filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(m.backup), 0755); err != nil {
			return m, err
		}
		if err := os.Rename(m.dst, m.backup); err != nil {
			return m, err
		}
	}

	if err := os.Rename(m.src, m.dst); err != nil {
		if m.backup != "" {
			_ = os.Rename(m.backup, m.dst)
		}
		return m, err
	}
	return m, nil
}

// rollback undoes committed moves in reverse order. Files go back to the
// staging directory so Abort can discard them.
func rollback(done []move) {
	for i := len(done) - 1; i >= 0; i-- {
		m := done[i]
		_ = os.Rename(m.dst, m.src)
		if m.backup != "" {
			_ = os.Rename(m.backup, m.dst)
		}
	}
}

// Abort discards staged files.
func (s *OutputStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saved = nil
	clear(s.seen)
	return os.RemoveAll(s.stagingDir())
}
