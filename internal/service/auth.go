package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/repository"
	"github.com/templui/diary/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("invalid password")
)

const sessionCookieName = "auth_token"

// VerificationNotifier delivers the verification code to a new user.
type VerificationNotifier interface {
	SendVerificationCode(ctx context.Context, email, username, code string) error
}

type AuthService struct {
	userRepository repository.UserRepository
	notifier       VerificationNotifier
	jwtSecret      string
	isProduction   bool
	jwtExpiry      time.Duration
	emailTimeout   time.Duration
	now            func() time.Time
	mail           sync.WaitGroup // in-flight verification emails
}

func NewAuthService(
	userRepository repository.UserRepository,
	notifier VerificationNotifier,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		notifier:       notifier,
		jwtSecret:      jwtSecret,
		isProduction:   isProduction,
		jwtExpiry:      jwtExpiry,
		emailTimeout:   10 * time.Second,
		now:            time.Now,
	}
}

// Register creates an unverified user with a fresh verification code and
// mails the code in the background. A mail failure is logged and does not
// fail or delay registration.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = validation.NormalizeEmail(email)

	err := validation.ValidateUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUsername, err)
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}

	_, err = s.userRepository.ByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Activate:     false,
		UniqueCode:   GenerateVerificationCode(),
		CreatedAt:    s.now(),
	}

	err = s.userRepository.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("register %s: %w", email, ErrEmailAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	s.sendVerificationCode(ctx, user)

	return user, nil
}

func (s *AuthService) sendVerificationCode(ctx context.Context, user *model.User) {
	if s.notifier == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	email, username, code, userID := user.Email, user.Username, user.UniqueCode, user.ID

	s.mail.Add(1)
	go func() {
		defer s.mail.Done()

		ctx, cancel := context.WithTimeout(ctx, s.emailTimeout)
		defer cancel()

		err := s.notifier.SendVerificationCode(ctx, email, username, code)
		if err != nil {
			slog.Error("failed to send verification email", "error", err, "user_id", userID)
		}
	}()
}

// WaitForEmails blocks until background verification emails have finished
// or ctx is done.
func (s *AuthService) WaitForEmails(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mail.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Authenticate checks a username/password pair.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepository.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(user *model.User) (string, time.Time, error) {
	now := s.now()
	expiry := now.Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiry.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiry, nil
}

// VerifyJWT returns the user id carried by a valid session token.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("token has no user_id")
	}
	return userID, nil
}

// StartSession logs the user in by issuing the session cookie.
func (s *AuthService) StartSession(w http.ResponseWriter, user *model.User) error {
	token, expiry, err := s.GenerateJWT(user)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	s.SetJWTCookie(w, token, expiry)
	return nil
}

func (s *AuthService) SessionToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
