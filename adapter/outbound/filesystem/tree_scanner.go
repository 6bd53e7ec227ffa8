package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/outbound"
)

// TreeScanner walks the watched root depth-first, asking the matcher at
// every entry. Symlinked directories are listed as files and never followed.
type TreeScanner struct {
	root    string
	matcher outbound.PathMatcher
}

func NewTreeScanner(root string, matcher outbound.PathMatcher) *TreeScanner {
	if root == "" {
		root = "."
	}
	return &TreeScanner{
		root:    root,
		matcher: matcher,
	}
}

func (s *TreeScanner) Root() string {
	return s.root
}

// Scan returns every reportable file below the root. Any unreadable
// directory fails the whole scan.
func (s *TreeScanner) Scan(ctx context.Context) ([]string, error) {
	files := make([]string, 0, 64)
	if err := s.scanDir(ctx, s.root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *TreeScanner) scanDir(ctx context.Context, dir string, files *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrScanFailed, dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if !s.matcher.ShouldRecurse(path) {
				continue
			}
			if err := s.scanDir(ctx, path, files); err != nil {
				return err
			}
			continue
		}

		if s.matcher.ShouldReport(path) {
			*files = append(*files, path)
		}
	}

	return nil
}
