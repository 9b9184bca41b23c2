package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.OutputStore = (*OutputStore)(nil)

// OutputStore is a mock implementation of llmstxt.OutputStore.
type OutputStore struct {
	SaveFn   func(ctx context.Context, path string, content string) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *OutputStore) Save(ctx context.Context, path string, content string) error {
	return s.SaveFn(ctx, path, content)
}

func (s *OutputStore) Commit() error {
	return s.CommitFn()
}

func (s *OutputStore) Abort() error {
	return s.AbortFn()
}
