package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/diary/internal/model"
)

var (
	alice = &model.User{ID: "alice-id", Username: "alice", Activate: true}
	bob   = &model.User{ID: "bob-id", Username: "bob", Activate: true}
)

func TestDiaryCreate(t *testing.T) {
	repo := newFakeDiaryRepo()
	svc := NewDiaryService(repo, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC) }

	entry, err := svc.Create(context.Background(), alice, "Dear <b>diary</b>")
	require.NoError(t, err)

	assert.Equal(t, []string{"Dear diary"}, entry.Content)
	assert.Equal(t, []string{"Tue Mar 05 2024"}, entry.Dates)
	assert.Equal(t, model.DiaryOwner{ID: "alice-id", Username: "alice"}, entry.User)

	stored, err := repo.ByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dear diary", stored.Text())
}

func TestDiaryCreateRejectsBlankContent(t *testing.T) {
	for _, content := range []string{"", "  ", "\n\t", "<p> </p>", "<script>x</script>"} {
		repo := newFakeDiaryRepo()
		svc := NewDiaryService(repo, nil)

		_, err := svc.Create(context.Background(), alice, content)
		assert.ErrorIs(t, err, ErrEmptyContent, "%q", content)
		assert.Empty(t, repo.entries)
	}
}

func TestDiaryListIncludesEveryOwner(t *testing.T) {
	repo := newFakeDiaryRepo()
	svc := NewDiaryService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, "from alice")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, "from bob")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDiaryUpdate(t *testing.T) {
	repo := newFakeDiaryRepo()
	svc := NewDiaryService(repo, nil)
	ctx := context.Background()

	entry, err := svc.Create(ctx, alice, "draft")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(ctx, entry.ID, "   "), ErrEmptyContent)
	require.NoError(t, svc.Update(ctx, entry.ID, "final"))
	assert.ErrorIs(t, svc.Update(ctx, "missing", "final"), ErrDiaryNotFound)

	stored, _ := repo.ByID(ctx, entry.ID)
	assert.Equal(t, "final", stored.Text())
}

func TestDiaryDelete(t *testing.T) {
	repo := newFakeDiaryRepo()
	svc := NewDiaryService(repo, nil)
	ctx := context.Background()

	entry, err := svc.Create(ctx, alice, "short lived")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, entry.ID), ErrDiaryNotFound)
}

func TestDiaryListUsesCacheAndWritesInvalidate(t *testing.T) {
	repo := newFakeDiaryRepo()
	cache := &fakeCache{}
	svc := NewDiaryService(repo, cache)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, "one")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second list should be served from cache")

	_, err = svc.Create(ctx, bob, "two")
	require.NoError(t, err)
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestDiaryListDoesNotCacheSnapshotOlderThanWrite(t *testing.T) {
	repo := newFakeDiaryRepo()
	cache := &fakeCache{}
	svc := NewDiaryService(repo, cache)
	ctx := context.Background()

	// a create lands between the store read and the cache write
	repo.afterList = func() {
		_, err := svc.Create(ctx, alice, "written during load")
		require.NoError(t, err)
	}

	stale, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale)

	fresh, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "written during load", fresh[0].Text())
}

func TestDiaryListSurvivesCancelledCaller(t *testing.T) {
	repo := newFakeDiaryRepo()
	svc := NewDiaryService(repo, &fakeCache{})
	_, err := svc.Create(context.Background(), alice, "one")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDiaryListFallsBackWhenCacheFails(t *testing.T) {
	repo := newFakeDiaryRepo()
	svc := NewDiaryService(repo, &fakeCache{readErr: errStoreDown})

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestDiaryListStoreError(t *testing.T) {
	repo := newFakeDiaryRepo()
	repo.err = errStoreDown
	svc := NewDiaryService(repo, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
}
