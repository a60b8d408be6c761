// Package scanner discovers message files under a directory tree.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner recursively finds message files with a given extension.
type Scanner struct {
	rootPath string
	ext      string
}

// New creates a scanner rooted at rootPath matching ext (e.g. ".eml").
func New(rootPath, ext string) *Scanner {
	return &Scanner{rootPath: rootPath, ext: strings.ToLower(ext)}
}

// Root returns the scan root, used to resolve the relative paths Scan returns.
func (s *Scanner) Root() string {
	return s.rootPath
}

// Scan returns matching files as sorted, slash-normalized paths relative
// to the root. Relative paths keep downstream artifacts portable across
// machines; sorting makes the batch order reproducible.
func (s *Scanner) Scan() ([]string, error) {
	absRoot, err := filepath.Abs(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute root path: %w", err)
	}

	var files []string
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if info.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != s.ext {
			return nil
		}
		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		files = append(files, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// Resolve maps a relative path returned by Scan back to a filesystem path.
func (s *Scanner) Resolve(relPath string) string {
	return filepath.Join(s.rootPath, filepath.FromSlash(relPath))
}
