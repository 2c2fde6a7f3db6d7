// Package upload writes uploaded files to a content store and hands back the
// reference that is saved on the profile row.
package upload

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"profile-service/internal/config"
)

// Sink stores uploads and opens them again by stored name.
type Sink interface {
	Store(ctx context.Context, originalName string, r io.Reader) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type Option func(*namer)

// WithNaming selects config.UploadNamingTimestamp or config.UploadNamingUUID.
func WithNaming(strategy string) Option {
	return func(n *namer) {
		n.strategy = strategy
	}
}

func WithClock(now func() time.Time) Option {
	return func(n *namer) {
		n.now = now
	}
}

// New builds the sink selected by cfg.Backend. The local content directory is
// created here, once, at start-up.
func New(ctx context.Context, cfg config.UploadConfig) (Sink, error) {
	opts := []Option{WithNaming(cfg.Naming)}

	switch cfg.Backend {
	case config.UploadBackendS3:
		return NewS3(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix, opts...)
	case config.UploadBackendLocal, "":
		store := NewLocal(cfg.Dir, opts...)
		if err := store.EnsureDir(); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}

type namer struct {
	strategy string
	now      func() time.Time
	newID    func() string
}

func newNamer(opts []Option) namer {
	n := namer{
		strategy: config.UploadNamingTimestamp,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// name is {unixSeconds}_{original} by default. Two uploads of the same name in
// the same second map to the same name and the later one wins.
func (n namer) name(originalName string) string {
	base := sanitizeName(originalName)
	if n.strategy == config.UploadNamingUUID {
		return n.newID() + "_" + base
	}
	return fmt.Sprintf("%d_%s", n.now().Unix(), base)
}

// sanitizeName keeps the original name but removes path separators.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return name
}

// validStoredName rejects anything that could escape the content directory.
func validStoredName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
