package outbound

import "context"

// PathMatcher decides which entries of the watched tree are visited.
type PathMatcher interface {
	ShouldRecurse(path string) bool
	ShouldReport(path string) bool
}

// TreeScanner enumerates the eligible files of the watched tree.
type TreeScanner interface {
	// returns every reportable file path, failing as a whole if any
	// directory cannot be read
	Scan(ctx context.Context) ([]string, error)

	// returns the directory being scanned
	Root() string
}

// FileObserver reads the value a ChangeStore compares for a file.
type FileObserver interface {
	Observe(path string) (int64, error)
}
