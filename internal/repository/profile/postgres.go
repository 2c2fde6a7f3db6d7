package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	profiledomain "profile-service/internal/domain/profile"
)

const uniqueViolationCode = "23505"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(profiledomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListProfiles(ctx context.Context) ([]profiledomain.Profile, error) {
	var items []profiledomain.Profile
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetProfileByID(ctx context.Context, id int64) (*profiledomain.Profile, error) {
	var profile profiledomain.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profiledomain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) CreateProfile(ctx context.Context, profile *profiledomain.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return profiledomain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdateFirstName(ctx context.Context, id int64, firstName string, updatedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&profiledomain.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"updated_at": updatedAt,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteProfile(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&profiledomain.Profile{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
