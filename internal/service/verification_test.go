package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/diary/internal/model"
)

func TestGenerateVerificationCode(t *testing.T) {
	seen := map[string]bool{}
	for range 200 {
		code := GenerateVerificationCode()
		require.Len(t, code, VerificationCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(verificationAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 190)
}

func seedUser(t *testing.T, users *fakeUserRepo, code string) *model.User {
	t.Helper()
	u := &model.User{Username: "alice", Email: "a@x.com", UniqueCode: code}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestVerifyScenario(t *testing.T) {
	users := newFakeUserRepo()
	code := GenerateVerificationCode()
	user := seedUser(t, users, code)
	svc := NewVerificationService(users)
	ctx := context.Background()

	err := svc.Verify(ctx, user.ID, strings.Repeat("0", VerificationCodeLength))
	assert.ErrorIs(t, err, ErrWrongCode)
	stored, _ := users.ByID(ctx, user.ID)
	assert.False(t, stored.Activate)

	require.NoError(t, svc.Verify(ctx, user.ID, code))
	stored, _ = users.ByID(ctx, user.ID)
	assert.True(t, stored.Activate)

	// repeating is harmless
	require.NoError(t, svc.Verify(ctx, user.ID, code))
	stored, _ = users.ByID(ctx, user.ID)
	assert.True(t, stored.Activate)
}

func TestVerifyIsExactMatch(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "AbCdEfGhIjKlMnOpQrStUvWxY")
	svc := NewVerificationService(users)

	for _, attempt := range []string{
		"abcdefghijklmnopqrstuvwxy",
		" AbCdEfGhIjKlMnOpQrStUvWxY",
		"AbCdEfGhIjKlMnOpQrStUvWx",
		"",
	} {
		assert.ErrorIs(t, svc.Verify(context.Background(), user.ID, attempt), ErrWrongCode, attempt)
	}

	stored, _ := users.ByID(context.Background(), user.ID)
	assert.False(t, stored.Activate)
}

func TestVerifyUnknownUser(t *testing.T) {
	svc := NewVerificationService(newFakeUserRepo())
	assert.ErrorIs(t, svc.Verify(context.Background(), "ghost", "x"), ErrUserNotFound)
}
