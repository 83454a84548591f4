package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/behnamfe76/user-service/internal/domain"
)

// memoryUserRepository keeps users in process memory. Used when no database is configured.
type memoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]domain.User
	now    func() time.Time
}

// NewMemoryUserRepository returns an in-memory implementation with the same uniqueness rules as the users table.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[int64]domain.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflicts(0, user.Username, user.Email) {
		return ErrDuplicate
	}

	r.nextID++
	now := r.now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if r.conflicts(user.ID, user.Username, user.Email) {
		return ErrDuplicate
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.now()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username || u.Email == email })
}

func (r *memoryUserRepository) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	if offset >= len(all) {
		return []domain.User{}, nil
	}
	end := len(all)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]domain.User{}, all[offset:end]...), nil
}

func (r *memoryUserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.sorted() {
		if match(user) {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// conflicts must be called with mu held.
func (r *memoryUserRepository) conflicts(selfID int64, username, email string) bool {
	for id, user := range r.users {
		if id == selfID {
			continue
		}
		if user.Username == username || user.Email == email {
			return true
		}
	}
	return false
}

func (r *memoryUserRepository) sorted() []domain.User {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
