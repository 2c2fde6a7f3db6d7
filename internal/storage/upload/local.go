package upload

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads in a single content directory.
type LocalStore struct {
	dir   string
	namer namer
}

func NewLocal(dir string, opts ...Option) *LocalStore {
	return &LocalStore{dir: dir, namer: newNamer(opts)}
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// EnsureDir is idempotent.
func (s *LocalStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir %s: %w", s.dir, err)
	}
	return nil
}

// Store writes r to <dir>/<name> and returns that path. Nothing is cleaned up
// when the copy fails halfway.
func (s *LocalStore) Store(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, s.namer.name(originalName))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// Open returns an *os.File so callers can seek for range requests.
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validStoredName(name) {
		return nil, fmt.Errorf("invalid upload name %q: %w", name, fs.ErrNotExist)
	}
	return os.Open(filepath.Join(s.dir, name))
}

var _ Sink = (*LocalStore)(nil)
