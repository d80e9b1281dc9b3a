package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Returned users are copies.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User), now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if user.Email != "" && u.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
		if user.FederatedSubject != "" && u.FederatedProvider == user.FederatedProvider && u.FederatedSubject == user.FederatedSubject {
			return nil, common.ErrAlreadyExists
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = r.now()
	r.users[user.ID] = *user
	return user, nil
}

func (r *MemoryRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			c := u
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return email != "" && u.Email == email })
}

func (r *MemoryRepository) GetByFederatedSubject(_ context.Context, provider, subject string) (*models.User, error) {
	return r.find(func(u models.User) bool {
		return subject != "" && u.FederatedProvider == provider && u.FederatedSubject == subject
	})
}

func (r *MemoryRepository) update(userID string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	fn(&u)
	r.users[userID] = u
	return nil
}

func (r *MemoryRepository) LinkFederated(_ context.Context, userID, provider, subject string) error {
	return r.update(userID, func(u *models.User) {
		u.FederatedProvider = provider
		u.FederatedSubject = subject
	})
}

func (r *MemoryRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) (*models.User, error) {
	if err := r.update(userID, func(u *models.User) { u.DisplayName = displayName }); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID)
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, userID string, hash []byte) error {
	return r.update(userID, func(u *models.User) { u.PasswordHash = hash })
}

func (r *MemoryRepository) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	return r.update(userID, func(u *models.User) { u.LastLoginAt = &at })
}
