package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/flash"
	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/repository"
	"github.com/templui/diary/internal/service"
)

type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func (n *recordingNotifier) SendVerificationCode(_ context.Context, email, _, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.codes == nil {
		n.codes = make(map[string]string)
	}
	n.codes[email] = code
	return nil
}

func (n *recordingNotifier) code(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

type testEnv struct {
	users    repository.UserRepository
	diaries  repository.DiaryRepository
	notifier *recordingNotifier
	auth     *service.AuthService
	verify   *service.VerificationService
	diary    *service.DiaryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    repository.NewMemoryUserRepository(),
		diaries:  repository.NewMemoryDiaryRepository(),
		notifier: &recordingNotifier{},
	}
	env.auth = service.NewAuthService(env.users, env.notifier, "test-secret", false, time.Hour)
	env.verify = service.NewVerificationService(env.users)
	env.diary = service.NewDiaryService(env.diaries, nil)
	return env
}

// seedUser registers a user through the service and optionally activates it.
func (e *testEnv) seedUser(t *testing.T, username string, verified bool) *model.User {
	t.Helper()
	ctx := context.Background()
	u, err := e.auth.Register(ctx, username, username+"@example.com", "pw1")
	require.NoError(t, err)
	if verified {
		require.NoError(t, e.users.SetActivate(ctx, u.ID, true))
		u.Activate = true
	}
	return u
}

func (e *testEnv) seedEntry(t *testing.T, owner *model.User, text string) *model.DiaryEntry {
	t.Helper()
	entry, err := e.diary.Create(context.Background(), owner, text)
	require.NoError(t, err)
	return entry
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func as(req *http.Request, user *model.User) *http.Request {
	var u *model.User
	if user != nil {
		u = user.Public()
	}
	return req.WithContext(ctxkeys.WithIdentity(req.Context(), model.NewIdentity(u)))
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) *model.Flash {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return flash.Pop(httptest.NewRecorder(), req)
}

func requireFlash(t *testing.T, rec *httptest.ResponseRecorder, kind model.FlashKind, msg string) {
	t.Helper()
	f := flashOf(t, rec)
	require.NotNil(t, f, "expected a flash")
	require.Equal(t, kind, f.Kind)
	require.Equal(t, msg, f.Message)
}
