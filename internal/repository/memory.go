package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/templui/diary/internal/model"
)

// Memory repositories back DB_DRIVER=memory: local runs without a database
// and the HTTP tests. Data is lost on restart.

type memoryUserRepository struct {
	mu    sync.RWMutex
	users []*model.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	c := *user
	r.users = append(r.users, &c)
	return nil
}

func (r *memoryUserRepository) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.users, match)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	c := *r.users[i]
	return &c, nil
}

func (r *memoryUserRepository) ByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *memoryUserRepository) ByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

// ByUsername returns the first inserted match, like the SQL ORDER BY created_at.
func (r *memoryUserRepository) ByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) SetActivate(_ context.Context, id string, activate bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			u.Activate = activate
			return nil
		}
	}
	return ErrUserNotFound
}

type memoryDiaryRepository struct {
	mu      sync.RWMutex
	entries []*model.DiaryEntry // insertion order
}

func NewMemoryDiaryRepository() DiaryRepository {
	return &memoryDiaryRepository{}
}

func cloneEntry(e *model.DiaryEntry) *model.DiaryEntry {
	c := *e
	c.Content = slices.Clone(e.Content)
	c.Dates = slices.Clone(e.Dates)
	return &c
}

func (r *memoryDiaryRepository) List(_ context.Context) ([]*model.DiaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.DiaryEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, cloneEntry(r.entries[i]))
	}
	return out, nil
}

func (r *memoryDiaryRepository) index(id string) int {
	return slices.IndexFunc(r.entries, func(e *model.DiaryEntry) bool { return e.ID == id })
}

func (r *memoryDiaryRepository) ByID(_ context.Context, id string) (*model.DiaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return nil, ErrDiaryNotFound
	}
	return cloneEntry(r.entries[i]), nil
}

func (r *memoryDiaryRepository) Create(_ context.Context, entry *model.DiaryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries = append(r.entries, cloneEntry(entry))
	return nil
}

func (r *memoryDiaryRepository) UpdateContent(_ context.Context, id string, content []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrDiaryNotFound
	}
	r.entries[i].Content = slices.Clone(content)
	return nil
}

func (r *memoryDiaryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrDiaryNotFound
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return nil
}
