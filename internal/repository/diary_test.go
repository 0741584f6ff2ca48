package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/diary/internal/model"
)

var diaryCols = []string{"id", "content", "dates", "user_id", "username", "created_at"}

func TestDiaryRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiaryRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(diaryCols).
		AddRow("d2", `["second"]`, `["Wed Mar 06 2024"]`, "bob-id", "bob", now).
		AddRow("d1", `["first"]`, `["Tue Mar 05 2024"]`, "alice-id", "alice", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, content, dates, user_id, username, created_at FROM diaries ORDER BY created_at DESC`)).
		WillReturnRows(rows)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Text())
	assert.Equal(t, "bob", entries[0].User.Username)
	assert.Equal(t, "Tue Mar 05 2024", entries[1].Date())
}

func TestDiaryRepositoryListRejectsCorruptRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiaryRepository(db)

	rows := sqlmock.NewRows(diaryCols).AddRow("d1", `not json`, `[]`, "u", "alice", time.Now())
	mock.ExpectQuery(`SELECT .* FROM diaries`).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "decode content of d1")
}

func TestDiaryRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiaryRepository(db)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO diaries (id, content, dates, user_id, username, created_at) VALUES ($1, $2, $3, $4, $5, $6)`)).
		WithArgs(sqlmock.AnyArg(), `["dear diary"]`, `["Tue Mar 05 2024"]`, "alice-id", "alice", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &model.DiaryEntry{
		Content:   []string{"dear diary"},
		Dates:     []string{"Tue Mar 05 2024"},
		User:      model.DiaryOwner{ID: "alice-id", Username: "alice"},
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
}

func TestDiaryRepositoryByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiaryRepository(db)

	mock.ExpectQuery(`SELECT .* FROM diaries WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(diaryCols))

	_, err := repo.ByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDiaryNotFound)
}

func TestDiaryRepositoryUpdateContent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiaryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE diaries SET content = $1 WHERE id = $2`)).
		WithArgs(`["edited"]`, "d1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE diaries SET content = $1 WHERE id = $2`)).
		WithArgs(`["edited"]`, "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateContent(context.Background(), "d1", []string{"edited"}))
	assert.ErrorIs(t, repo.UpdateContent(context.Background(), "gone", []string{"edited"}), ErrDiaryNotFound)
}

func TestDiaryRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiaryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM diaries WHERE id = $1`)).
		WithArgs("d1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM diaries WHERE id = $1`)).
		WithArgs("d1").
		WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Delete(context.Background(), "d1"))
	assert.EqualError(t, repo.Delete(context.Background(), "d1"), "db down")
}
