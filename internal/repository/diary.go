package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/diary/internal/model"
)

var ErrDiaryNotFound = errors.New("diary entry not found")

type DiaryRepository interface {
	// List returns every entry, newest first, regardless of owner.
	List(ctx context.Context) ([]*model.DiaryEntry, error)
	ByID(ctx context.Context, id string) (*model.DiaryEntry, error)
	Create(ctx context.Context, entry *model.DiaryEntry) error
	UpdateContent(ctx context.Context, id string, content []string) error
	Delete(ctx context.Context, id string) error
}

// diaryRow stores the list fields as JSON arrays in TEXT columns.
type diaryRow struct {
	ID        string    `db:"id"`
	Content   string    `db:"content"`
	Dates     string    `db:"dates"`
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}

func (row *diaryRow) entry() (*model.DiaryEntry, error) {
	e := &model.DiaryEntry{
		ID:        row.ID,
		User:      model.DiaryOwner{ID: row.UserID, Username: row.Username},
		CreatedAt: row.CreatedAt,
	}
	err := json.Unmarshal([]byte(row.Content), &e.Content)
	if err != nil {
		return nil, fmt.Errorf("decode content of %s: %w", row.ID, err)
	}
	err = json.Unmarshal([]byte(row.Dates), &e.Dates)
	if err != nil {
		return nil, fmt.Errorf("decode dates of %s: %w", row.ID, err)
	}
	return e, nil
}

type diaryRepository struct {
	db *sqlx.DB
}

func NewDiaryRepository(db *sqlx.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

const diaryColumns = `id, content, dates, user_id, username, created_at`

func (r *diaryRepository) List(ctx context.Context) ([]*model.DiaryEntry, error) {
	var rows []diaryRow
	query := `SELECT ` + diaryColumns + ` FROM diaries ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.DiaryEntry, 0, len(rows))
	for i := range rows {
		e, err := rows[i].entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *diaryRepository) ByID(ctx context.Context, id string) (*model.DiaryEntry, error) {
	var row diaryRow
	query := `SELECT ` + diaryColumns + ` FROM diaries WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDiaryNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.entry()
}

func (r *diaryRepository) Create(ctx context.Context, entry *model.DiaryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	content, err := json.Marshal(entry.Content)
	if err != nil {
		return err
	}
	dates, err := json.Marshal(entry.Dates)
	if err != nil {
		return err
	}

	query := `INSERT INTO diaries (` + diaryColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, string(content), string(dates), entry.User.ID, entry.User.Username, entry.CreatedAt)
	return err
}

func (r *diaryRepository) UpdateContent(ctx context.Context, id string, content []string) error {
	encoded, err := json.Marshal(content)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `UPDATE diaries SET content = $1 WHERE id = $2`, string(encoded), id)
	if err != nil {
		return err
	}
	return expectAffected(result, ErrDiaryNotFound)
}

func (r *diaryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM diaries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, ErrDiaryNotFound)
}

func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
