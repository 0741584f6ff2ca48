package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/diary/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	// ByUsername returns the oldest user with the name; usernames are not unique.
	ByUsername(ctx context.Context, username string) (*model.User, error)
	SetActivate(ctx context.Context, id string, activate bool) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `INSERT INTO users (id, username, email, password_hash, activate, unique_code, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Activate, user.UniqueCode, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	return r.get(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepository) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.get(ctx, `SELECT * FROM users WHERE username = $1 ORDER BY created_at LIMIT 1`, username)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.GetContext(ctx, user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SetActivate(ctx context.Context, id string, activate bool) error {
	query := `UPDATE users SET activate = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, activate, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isUniqueViolation works for both SQLite and PostgreSQL error strings.
func isUniqueViolation(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}
