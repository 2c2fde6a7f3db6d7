package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrValidation      = errors.New("validation failed")
	ErrStorageFailure  = errors.New("file storage failed")
)
