package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/ajkula/moni/domain/model"
)

// PathFilter decides per path whether the tree enumerator descends into it
// or reports it. Exclusion rules apply to files and directories alike; the
// target extension allow-list only applies to files.
type PathFilter struct {
	ignoreFilenames  map[string]struct{}
	ignorePatterns   []*regexp.Regexp
	ignoreGlobs      []glob.Glob
	ignoreExtensions []model.Extension
	targetExtensions []model.Extension
}

// NewPathFilter compiles every rule of cfg. A malformed pattern or an
// unknown extension name is returned as an error.
func NewPathFilter(cfg model.PathFilterConfig) (*PathFilter, error) {
	f := &PathFilter{
		ignoreFilenames: make(map[string]struct{}, len(cfg.IgnoreFilenames)),
	}

	for _, name := range cfg.IgnoreFilenames {
		if name = strings.TrimSpace(name); name != "" {
			f.ignoreFilenames[name] = struct{}{}
		}
	}

	for _, expr := range cfg.IgnorePatterns {
		if expr == "" {
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", model.ErrInvalidPattern, expr, err)
		}
		f.ignorePatterns = append(f.ignorePatterns, re)
	}

	for _, pattern := range cfg.IgnoreGlobs {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: glob %q: %v", model.ErrInvalidPattern, pattern, err)
		}
		f.ignoreGlobs = append(f.ignoreGlobs, g)
	}

	var err error
	if f.ignoreExtensions, err = model.ParseExtensions(cfg.IgnoreExtensions); err != nil {
		return nil, fmt.Errorf("ignore extensions: %w", err)
	}
	if f.targetExtensions, err = model.ParseExtensions(cfg.TargetExtensions); err != nil {
		return nil, fmt.Errorf("target extensions: %w", err)
	}

	return f, nil
}

// IsExcluded reports whether any exclusion rule matches path.
func (f *PathFilter) IsExcluded(path string) bool {
	base := filepath.Base(path)

	if _, ok := f.ignoreFilenames[base]; ok {
		return true
	}
	for _, re := range f.ignorePatterns {
		if re.MatchString(base) {
			return true
		}
	}
	for _, g := range f.ignoreGlobs {
		if g.Match(base) {
			return true
		}
	}
	for _, ext := range f.ignoreExtensions {
		if ext.Matches(path) {
			return true
		}
	}
	return false
}

// ShouldRecurse is the predicate for directories.
func (f *PathFilter) ShouldRecurse(path string) bool {
	return !f.IsExcluded(path)
}

// ShouldReport is the predicate for files.
func (f *PathFilter) ShouldReport(path string) bool {
	if f.IsExcluded(path) {
		return false
	}
	if len(f.targetExtensions) == 0 {
		return true
	}
	for _, ext := range f.targetExtensions {
		if ext.Matches(path) {
			return true
		}
	}
	return false
}
