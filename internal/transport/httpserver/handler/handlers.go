package handler

import (
	"context"
	"io"

	profiledomain "profile-service/internal/domain/profile"
	"profile-service/pkg/logger"
)

// UploadOpener reads back a stored upload by its stored file name.
type UploadOpener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type Handlers struct {
	Profiles *profiledomain.Service
	Uploads  UploadOpener

	log                logger.Logger
	maxMultipartMemory int64
}

func New(profiles *profiledomain.Service, uploads UploadOpener, maxMultipartMemory int64, log logger.Logger) *Handlers {
	if maxMultipartMemory <= 0 {
		maxMultipartMemory = 32 << 20
	}
	return &Handlers{
		Profiles:           profiles,
		Uploads:            uploads,
		log:                log,
		maxMultipartMemory: maxMultipartMemory,
	}
}
