package document

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Storage defines the interface for blob storage of the original PDFs.
// Paths use forward slashes and are keyed as "category/sanitizedName".
type Storage interface {
	// Put saves a blob under path, replacing any existing one
	Put(path string, data []byte, contentType string) error

	// List returns all stored paths starting with prefix ("" for all)
	List(prefix string) ([]string, error)

	// Delete removes the given paths; it fails on the first path that
	// cannot be removed
	Delete(paths []string) error
}

var (
	strippedSymbols = regexp.MustCompile(`[|,&'()]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	unsafeChars     = regexp.MustCompile(`[^A-Za-z0-9._\-/]`)
	dashRuns        = regexp.MustCompile(`-{2,}`)
)

// SanitizeFilename makes a filename safe for use as a storage path
// segment: symbols are stripped, whitespace becomes underscores, any
// other character outside [A-Za-z0-9._-/] becomes a dash, and dash runs
// collapse.
func SanitizeFilename(filename string) string {
	s := strippedSymbols.ReplaceAllString(filename, "")
	s = whitespaceRuns.ReplaceAllString(s, "_")
	s = unsafeChars.ReplaceAllString(s, "-")
	return dashRuns.ReplaceAllString(s, "-")
}

// LocalStorage implements the Storage interface on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Put saves a blob to local storage, creating category directories as
// needed. The content type is carried for interface compatibility with
// remote blob stores; the filesystem has no use for it.
func (l *LocalStorage) Put(path string, data []byte, contentType string) error {
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// List returns all stored paths under prefix, in lexical walk order
func (l *LocalStorage) List(prefix string) ([]string, error) {
	paths := make([]string, 0)
	err := filepath.WalkDir(l.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing storage: %w", err)
	}
	return paths, nil
}

// Delete removes blobs from local storage
func (l *LocalStorage) Delete(paths []string) error {
	for _, path := range paths {
		fullPath := filepath.Join(l.basePath, filepath.FromSlash(path))
		if err := os.Remove(fullPath); err != nil {
			return fmt.Errorf("deleting %s: %w", path, err)
		}
	}
	return nil
}
