package profile

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo  Repository
	files FileStore
	now   func() time.Time
}

func NewService(repo Repository, files FileStore) *Service {
	return &Service{
		repo:  repo,
		files: files,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) ListProfiles(ctx context.Context) ([]Profile, error) {
	items, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Profile{}, nil
	}
	return items, nil
}

func (s *Service) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.GetProfileByID(ctx, id)
}

// CreateProfile stores the attached files first and then inserts the row.
// Files written before a failed insert are left in place.
func (s *Service) CreateProfile(ctx context.Context, input CreateProfileInput) (*Profile, error) {
	if err := validateRequired(map[string]string{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      input.Email,
	}); err != nil {
		return nil, err
	}

	profileImage, err := s.storeUpload(ctx, "profile_image", input.ProfileImage)
	if err != nil {
		return nil, err
	}
	resumeFile, err := s.storeUpload(ctx, "resume_file", input.ResumeFile)
	if err != nil {
		return nil, err
	}
	projectImage, err := s.storeUpload(ctx, "project_image", input.ProjectImage)
	if err != nil {
		return nil, err
	}

	profile := Profile{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Contact:        input.Contact,
		JobPreferences: input.JobPreferences,
		Employment:     input.Employment,
		Education:      input.Education,
		Resume:         input.Resume,
		Certification:  input.Certification,
		Project:        input.Project,
	}
	profile.Contact.ProfileImage = profileImage
	profile.Resume.ResumeFile = resumeFile
	profile.Project.ProjectImageURL = projectImage

	if err := s.repo.CreateProfile(ctx, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateProfile rewrites first_name only. Every other column keeps its stored value.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	if err := validateRequired(map[string]string{"first_name": input.FirstName}); err != nil {
		return nil, err
	}

	var updated *Profile
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		profile, err := tx.GetProfileByID(ctx, input.ID)
		if err != nil {
			return err
		}

		profile.FirstName = input.FirstName
		profile.UpdatedAt = s.now()

		ok, err := tx.UpdateFirstName(ctx, profile.ID, profile.FirstName, profile.UpdatedAt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProfileNotFound
		}

		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteProfile removes the row. Uploaded files referenced by it stay on disk.
func (s *Service) DeleteProfile(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteProfile(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProfileNotFound
	}
	return nil
}

func (s *Service) storeUpload(ctx context.Context, field string, upload *Upload) (*string, error) {
	if upload == nil || upload.Content == nil || upload.Filename == "" {
		return nil, nil
	}
	if s.files == nil {
		return nil, fmt.Errorf("%w: %s: no file store configured", ErrStorageFailure, field)
	}

	path, err := s.files.Store(ctx, upload.Filename, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStorageFailure, field, err)
	}
	return &path, nil
}

func validateRequired(fields map[string]string) error {
	// fixed order keeps the message stable
	for _, name := range []string{"first_name", "last_name", "email"} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}
	return nil
}
