package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/flash"
	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/repository"
)

const (
	MsgLoginRequired   = "You need to be to Logged in to do that."
	MsgDiaryNotFound   = "Diary content not found."
	MsgPermissionError = "You don't have right permission to do that."
)

// Decision is the outcome of one guard.
type Decision struct {
	Allow    bool
	Reason   string
	Redirect string
	Flash    *model.Flash
	// Context, when set on an allow, replaces the request context for the
	// remaining guards and the handler.
	Context context.Context
}

func Allow() Decision {
	return Decision{Allow: true}
}

func Deny(reason, redirect string, f *model.Flash) Decision {
	return Decision{Reason: reason, Redirect: redirect, Flash: f}
}

// Guard is a named predicate evaluated before a handler.
type Guard struct {
	Name  string
	Check func(r *http.Request) Decision
}

// Guarded runs guards in order and calls next only if all allow. The first
// deny sets its flash and redirects.
func Guarded(next http.HandlerFunc, guards ...Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, g := range guards {
			d := g.Check(r)
			if !d.Allow {
				slog.Debug("guard denied",
					"guard", g.Name,
					"reason", d.Reason,
					"path", r.URL.Path,
					"user_id", ctxkeys.Identity(r.Context()).UserID(),
				)
				deny(w, r, d)
				return
			}
			if d.Context != nil {
				r = r.WithContext(d.Context)
			}
		}
		next(w, r)
	}
}

func deny(w http.ResponseWriter, r *http.Request, d Decision) {
	flash.Set(w, d.Flash)
	// HTMX requests need HX-Redirect for a full page redirect
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", d.Redirect)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
}

var (
	// Authenticated sends anonymous callers to the login page.
	Authenticated = Guard{Name: "authenticated", Check: func(r *http.Request) Decision {
		if !ctxkeys.Identity(r.Context()).Authenticated() {
			return Deny("no session", "/login", nil)
		}
		return Allow()
	}}

	// AuthenticatedWithNotice is Authenticated plus a login notice, used in
	// front of the ownership check.
	AuthenticatedWithNotice = Guard{Name: "authenticated_notice", Check: func(r *http.Request) Decision {
		if !ctxkeys.Identity(r.Context()).Authenticated() {
			return Deny("no session", "/login", model.ErrorFlash(MsgLoginRequired))
		}
		return Allow()
	}}

	// Verified sends users who have not confirmed their email to /verify.
	Verified = Guard{Name: "verified", Check: func(r *http.Request) Decision {
		if !ctxkeys.Identity(r.Context()).Verified() {
			return Deny("email not verified", "/verify", nil)
		}
		return Allow()
	}}

	// Unverified sends already verified users on to their diary.
	Unverified = Guard{Name: "unverified", Check: func(r *http.Request) Decision {
		if ctxkeys.Identity(r.Context()).Verified() {
			return Deny("already verified", "/diary", nil)
		}
		return Allow()
	}}
)

// RequireAuthenticated admits verified users only.
var RequireAuthenticated = []Guard{Authenticated, Verified}

// RequireUnverified admits signed-in users who still have to verify.
var RequireUnverified = []Guard{Authenticated, Unverified}

// DiaryFinder loads a diary entry by id.
type DiaryFinder interface {
	ByID(ctx context.Context, id string) (*model.DiaryEntry, error)
}

// OwnsDiary admits the caller only if they own the entry named by the {id}
// path value. The loaded entry is passed on via ctxkeys.Diary.
func OwnsDiary(diaries DiaryFinder) Guard {
	return Guard{Name: "owns_diary", Check: func(r *http.Request) Decision {
		id := r.PathValue("id")

		entry, err := diaries.ByID(r.Context(), id)
		if err != nil {
			if !errors.Is(err, repository.ErrDiaryNotFound) {
				slog.Error("failed to load diary entry", "error", err, "diary_id", id)
			}
			return Deny("diary not found", "/diary", model.ErrorFlash(MsgDiaryNotFound))
		}

		if !entry.OwnedBy(ctxkeys.Identity(r.Context()).UserID()) {
			return Deny("not the owner", "/diary", model.ErrorFlash(MsgPermissionError))
		}

		return Decision{Allow: true, Context: ctxkeys.WithDiary(r.Context(), entry)}
	}}
}

// Owner is the guard chain for routes that change one specific entry.
func Owner(diaries DiaryFinder) []Guard {
	return []Guard{AuthenticatedWithNotice, OwnsDiary(diaries)}
}
