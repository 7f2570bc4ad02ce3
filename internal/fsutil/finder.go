// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// ResolvePaths expands every path into the files with the given extension:
// a file is taken as is, a directory is searched recursively. Paths that do
// not exist are skipped. The result is sorted and free of duplicates.
func ResolvePaths(paths []string, extension string) ([]string, error) {
	seen := make(map[string]struct{})
	var all []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue // It's not an error if a configured path doesn't exist.
		}
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		files := []string{path}
		if info.IsDir() {
			if files, err = FindFilesByExtension(path, extension); err != nil {
				return nil, err
			}
		}
		for _, f := range files {
			if _, dup := seen[f]; !dup {
				seen[f] = struct{}{}
				all = append(all, f)
			}
		}
	}
	sort.Strings(all)
	return all, nil
}
