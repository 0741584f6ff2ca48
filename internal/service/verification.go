package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/templui/diary/internal/repository"
)

var ErrWrongCode = errors.New("verification code is wrong")

const (
	VerificationCodeLength = 25
	verificationAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateVerificationCode returns a code drawn uniformly from [A-Za-z0-9].
// The source is math/rand: codes never expire and are not secrets of the
// same grade as passwords.
func GenerateVerificationCode() string {
	b := make([]byte, VerificationCodeLength)
	for i := range b {
		b[i] = verificationAlphabet[rand.IntN(len(verificationAlphabet))]
	}
	return string(b)
}

type VerificationService struct {
	userRepository repository.UserRepository
}

func NewVerificationService(userRepository repository.UserRepository) *VerificationService {
	return &VerificationService{userRepository: userRepository}
}

// Verify activates the user when submitted equals the stored code exactly.
// Verifying an already active user with the right code succeeds again.
func (s *VerificationService) Verify(ctx context.Context, userID, submitted string) error {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.UniqueCode == "" || submitted != user.UniqueCode {
		slog.Info("verification code mismatch", "user_id", user.ID)
		return ErrWrongCode
	}

	if user.Activate {
		return nil
	}

	err = s.userRepository.SetActivate(ctx, user.ID, true)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	slog.Info("user verified", "user_id", user.ID)
	return nil
}
