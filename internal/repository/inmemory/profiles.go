package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	profiledomain "profile-service/internal/domain/profile"
)

// ProfileRepository keeps profiles in process memory. Rows are lost on restart.
type ProfileRepository struct {
	txMu sync.Mutex

	mu     sync.RWMutex
	nextID int64
	items  map[int64]profiledomain.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		nextID: 1,
		items:  make(map[int64]profiledomain.Profile),
	}
}

// Transaction serializes fn against other transactions; it does not roll back.
func (r *ProfileRepository) Transaction(ctx context.Context, fn func(profiledomain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]profiledomain.Profile, error) {
	r.mu.RLock()
	items := make([]profiledomain.Profile, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *ProfileRepository) GetProfileByID(ctx context.Context, id int64) (*profiledomain.Profile, error) {
	r.mu.RLock()
	item, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, profiledomain.ErrProfileNotFound
	}
	return &item, nil
}

func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *profiledomain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == profile.Email {
			return profiledomain.ErrEmailTaken
		}
	}

	profile.ID = r.nextID
	r.nextID++
	r.items[profile.ID] = *profile
	return nil
}

func (r *ProfileRepository) UpdateFirstName(ctx context.Context, id int64, firstName string, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	item.FirstName = firstName
	item.UpdatedAt = updatedAt
	r.items[id] = item
	return true, nil
}

func (r *ProfileRepository) DeleteProfile(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

var _ profiledomain.Repository = (*ProfileRepository)(nil)
