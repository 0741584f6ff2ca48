package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/repository"
	"github.com/templui/diary/internal/validation"
)

var ErrUserNotFound = repository.ErrUserNotFound

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// Activate marks the user as verified without a code. Used by the admin CLI.
func (s *UserService) Activate(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepository.ByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	err = s.userRepository.SetActivate(ctx, user.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	user.Activate = true
	return user, nil
}
