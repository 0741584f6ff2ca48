package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) ByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) ByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) ByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) SetActivate(_ context.Context, id string, activate bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Activate = activate
	return nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeDiaryRepo struct {
	mu        sync.Mutex
	entries   map[string]*model.DiaryEntry
	nextID    int
	listCalls int
	err       error
	afterList func() // runs after List has taken its snapshot
}

func newFakeDiaryRepo() *fakeDiaryRepo {
	return &fakeDiaryRepo{entries: map[string]*model.DiaryEntry{}}
}

func (r *fakeDiaryRepo) List(ctx context.Context) ([]*model.DiaryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := r.snapshot()
	if err == nil && r.afterList != nil {
		hook := r.afterList
		r.afterList = nil
		hook()
	}
	return out, err
}

func (r *fakeDiaryRepo) snapshot() ([]*model.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.DiaryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeDiaryRepo) ByID(_ context.Context, id string) (*model.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrDiaryNotFound
	}
	c := *e
	return &c, nil
}

func (r *fakeDiaryRepo) Create(_ context.Context, entry *model.DiaryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	entry.ID = fmt.Sprintf("diary-%d", r.nextID)
	c := *entry
	r.entries[entry.ID] = &c
	return nil
}

func (r *fakeDiaryRepo) UpdateContent(_ context.Context, id string, content []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return repository.ErrDiaryNotFound
	}
	e.Content = content
	return nil
}

func (r *fakeDiaryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return repository.ErrDiaryNotFound
	}
	delete(r.entries, id)
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	list        []*model.DiaryEntry
	gen         int64
	invalidated int
	readErr     error
}

func (c *fakeCache) List(context.Context) ([]*model.DiaryEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list, c.readErr
}

func (c *fakeCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *fakeCache) SetList(_ context.Context, gen int64, list []*model.DiaryEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.list = list
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.gen++
	c.list = nil
	return nil
}

type sentCode struct {
	email, username, code string
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []sentCode
	err   error
	delay time.Duration
}

func (n *fakeNotifier) SendVerificationCode(ctx context.Context, email, username, code string) error {
	if n.delay > 0 {
		select {
		case <-time.After(n.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentCode{email, username, code})
	return n.err
}

func (n *fakeNotifier) sentCodes() []sentCode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentCode(nil), n.sent...)
}

var errStoreDown = errors.New("store unreachable")
