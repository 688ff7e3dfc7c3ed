package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = fmt.Errorf("file not found")
var ErrInvalidPath = fmt.Errorf("invalid file path")

// DirStore reads and writes files below a single root directory. It holds no
// mutable state and is safe to share between connections.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) Dir() string {
	return s.dir
}

// cleanName rejects anything that could leave the root: absolute paths and
// ".." segments. The name is otherwise used as received.
func cleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return "", errors.Join(ErrInvalidPath, fmt.Errorf("name %q", name))
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", errors.Join(ErrInvalidPath, fmt.Errorf("name %q", name))
		}
	}
	return filepath.FromSlash(name), nil
}

func (s *DirStore) ReadFile(name string) ([]byte, error) {
	rel, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, fmt.Errorf("open root: %w", err)
	}
	defer root.Close()

	f, err := root.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", name, err)
	}
	if info.IsDir() {
		return nil, errors.Join(ErrNotFound, fmt.Errorf("%q is a directory", name))
	}
	return io.ReadAll(f)
}

// WriteFile creates or truncates name and writes data to it.
func (s *DirStore) WriteFile(name string, data []byte) error {
	rel, err := cleanName(name)
	if err != nil {
		return err
	}
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return fmt.Errorf("open root: %w", err)
	}
	defer root.Close()

	f, err := root.Create(rel)
	if err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", name, err)
	}
	return f.Close()
}
