package ctxkeys

import (
	"context"

	"github.com/templui/diary/internal/config"
	"github.com/templui/diary/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	IdentityKey  contextKey = "identity"
	DiaryKey     contextKey = "diary"
	FlashKey     contextKey = "flash"
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
)

// Identity never returns nil; a request without a session is anonymous.
func Identity(ctx context.Context) *model.Identity {
	id, _ := ctx.Value(IdentityKey).(*model.Identity)
	if id == nil {
		return model.NewIdentity(nil)
	}
	return id
}

func WithIdentity(ctx context.Context, id *model.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// User is a shortcut for Identity(ctx).User.
func User(ctx context.Context) *model.User {
	return Identity(ctx).User
}

func Diary(ctx context.Context) *model.DiaryEntry {
	entry, _ := ctx.Value(DiaryKey).(*model.DiaryEntry)
	return entry
}

func WithDiary(ctx context.Context, entry *model.DiaryEntry) context.Context {
	return context.WithValue(ctx, DiaryKey, entry)
}

func Flash(ctx context.Context) *model.Flash {
	f, _ := ctx.Value(FlashKey).(*model.Flash)
	return f
}

func WithFlash(ctx context.Context, f *model.Flash) context.Context {
	return context.WithValue(ctx, FlashKey, f)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}
