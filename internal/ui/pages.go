package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/a-h/templ"
	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/markdown"
	"github.com/templui/diary/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// View is what every page template receives.
type View struct {
	Title     string
	AppName   string
	Identity  *model.Identity
	Flash     *model.Flash
	CSRFToken string
	Nonce     string
	Path      string
	Data      any
}

// Current reports whether the request path is section or below it.
func (v View) Current(section string) bool {
	return v.Path == section || strings.HasPrefix(v.Path, section+"/")
}

var md = markdown.NewParser()

var funcs = template.FuncMap{
	"button":   buttonFunc,
	"alert":    AlertClass,
	"markdown": md.HTML,
	"owns": func(id *model.Identity, e *model.DiaryEntry) bool {
		return id != nil && e != nil && e.OwnedBy(id.UserID())
	},
}

// pages maps a page name to the layout cloned with that page's content.
var pages = mustParsePages(templateFS)

func mustParsePages(fsys fs.FS) map[string]*template.Template {
	layout := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(fsys, "templates/layout.html"))

	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		panic(err)
	}

	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == "templates/layout.html" {
			continue
		}
		t := template.Must(template.Must(layout.Clone()).ParseFS(fsys, name))
		out[name[len("templates/"):len(name)-len(".html")]] = t
	}
	return out
}

// page adapts a parsed template to templ.Component so handlers render
// every page through the same ui.Render path.
func page(name, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", newView(ctx, title, data))
	})
}

func newView(ctx context.Context, title string, data any) View {
	appName := "Diary"
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		appName = cfg.AppName
	}
	return View{
		Title:     PageTitle(title, appName),
		AppName:   appName,
		Identity:  ctxkeys.Identity(ctx),
		Flash:     ctxkeys.Flash(ctx),
		CSRFToken: ctxkeys.CSRFToken(ctx),
		Nonce:     templ.GetNonce(ctx),
		Path:      ctxkeys.URLPath(ctx),
		Data:      data,
	}
}

func Home() templ.Component {
	return page("home", "", nil)
}

type AuthForm struct {
	Username string
	Email    string
}

func Login(form AuthForm) templ.Component {
	return page("login", "login", form)
}

func Register(form AuthForm) templ.Component {
	return page("register", "register", form)
}

func Verify(email string) templ.Component {
	return page("verify", "verify email", email)
}

func DiaryList(entries []*model.DiaryEntry) templ.Component {
	return page("diary", "diary", entries)
}

func DiaryEdit(entry *model.DiaryEntry) templ.Component {
	return page("edit", "edit entry", entry)
}

func NotFound() templ.Component {
	return page("notfound", "not found", nil)
}
