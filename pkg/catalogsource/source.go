package catalogsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by Read when the named document does not exist.
var ErrNotFound = errors.New("catalogue document not found")

// Source is a read-only collection of policy documents, one per version.
type Source interface {
	// List returns the names of every catalogue document, sorted.
	List(ctx context.Context) ([]string, error)
	// Read returns the raw bytes of a single document.
	Read(ctx context.Context, name string) ([]byte, error)
}

// IsDocument reports whether name carries a catalogue document extension.
func IsDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// FileSource reads catalogue documents from a single directory.
type FileSource struct {
	dir string
}

// NewFileSource returns a source over dir. The directory must exist.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalogsource: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalogsource: %s is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

func (s *FileSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("catalogsource: read dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsDocument(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileSource) Read(ctx context.Context, name string) ([]byte, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("catalogsource: invalid document name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name)) //nolint:gosec // name confined to dir above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalogsource: %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("catalogsource: read %s: %w", name, err)
	}
	return data, nil
}
