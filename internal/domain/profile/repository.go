package profile

import (
	"context"
	"io"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListProfiles(ctx context.Context) ([]Profile, error)
	GetProfileByID(ctx context.Context, id int64) (*Profile, error)
	CreateProfile(ctx context.Context, profile *Profile) error
	UpdateFirstName(ctx context.Context, id int64, firstName string, updatedAt time.Time) (bool, error)
	DeleteProfile(ctx context.Context, id int64) (bool, error)
}

// FileStore persists an uploaded stream and returns the reference saved on the row.
type FileStore interface {
	Store(ctx context.Context, originalName string, r io.Reader) (string, error)
}
