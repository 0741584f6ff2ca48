package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/repository"
	"github.com/templui/diary/internal/validation"
	"golang.org/x/sync/singleflight"
)

var (
	ErrEmptyContent  = errors.New("content cannot be empty")
	ErrDiaryNotFound = repository.ErrDiaryNotFound
)

// DiaryCache is an optional read-through cache for the full list.
// Invalidate bumps the generation; SetList with an older generation is a no-op.
type DiaryCache interface {
	List(ctx context.Context) ([]*model.DiaryEntry, error)
	Generation(ctx context.Context) (int64, error)
	SetList(ctx context.Context, gen int64, list []*model.DiaryEntry) error
	Invalidate(ctx context.Context) error
}

type DiaryService struct {
	repo  repository.DiaryRepository
	cache DiaryCache
	sf    singleflight.Group
	now   func() time.Time
}

// NewDiaryService creates a DiaryService. If cache is nil, caching is disabled.
func NewDiaryService(repo repository.DiaryRepository, cache DiaryCache) *DiaryService {
	return &DiaryService{repo: repo, cache: cache, now: time.Now}
}

// List returns every user's entries, newest first.
func (s *DiaryService) List(ctx context.Context) ([]*model.DiaryEntry, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}

	// the load is shared by every waiting caller
	ctx = context.WithoutCancel(ctx)

	v, err, _ := s.sf.Do("list", func() (any, error) {
		list, err := s.cache.List(ctx)
		if err != nil {
			slog.Warn("diary cache read failed", "error", err)
		}
		if err == nil && list != nil {
			return list, nil
		}

		gen, genErr := s.cache.Generation(ctx)
		if genErr != nil {
			slog.Warn("diary cache generation read failed", "error", genErr)
		}

		list, err = s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if genErr != nil {
			return list, nil
		}

		err = s.cache.SetList(ctx, gen, list)
		if err != nil {
			slog.Warn("diary cache write failed", "error", err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*model.DiaryEntry), nil
}

func (s *DiaryService) ByID(ctx context.Context, id string) (*model.DiaryEntry, error) {
	return s.repo.ByID(ctx, id)
}

// Create stores sanitized content owned by owner, dated today.
func (s *DiaryService) Create(ctx context.Context, owner *model.User, rawContent string) (*model.DiaryEntry, error) {
	content, err := cleanContent(rawContent)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := &model.DiaryEntry{
		Content:   []string{content},
		Dates:     []string{now.Format(model.DateLayout)},
		User:      model.DiaryOwner{ID: owner.ID, Username: owner.Username},
		CreatedAt: now,
	}

	err = s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create diary entry: %w", err)
	}

	s.invalidateCache(ctx)
	return entry, nil
}

// Update replaces the content of an entry. Ownership is checked by the caller.
func (s *DiaryService) Update(ctx context.Context, id, rawContent string) error {
	content, err := cleanContent(rawContent)
	if err != nil {
		return err
	}

	err = s.repo.UpdateContent(ctx, id, []string{content})
	if err != nil {
		if errors.Is(err, repository.ErrDiaryNotFound) {
			return err
		}
		return fmt.Errorf("failed to update diary entry: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

// Delete removes an entry regardless of who owns it.
func (s *DiaryService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiaryNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete diary entry: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func cleanContent(raw string) (string, error) {
	content := validation.SanitizeContent(raw)
	if validation.IsBlank(content) {
		return "", ErrEmptyContent
	}
	return content, nil
}

func (s *DiaryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	err := s.cache.Invalidate(ctx)
	if err != nil {
		slog.Warn("diary cache invalidation failed", "error", err)
	}
}
