package ui

import (
	"fmt"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/templui/diary/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
)

var buttonVariants = map[string]ButtonVariant{
	string(ButtonPrimary):   ButtonPrimary,
	string(ButtonSecondary): ButtonSecondary,
	string(ButtonDanger):    ButtonDanger,
}

// buttonFunc backs the "button" template func. An unknown variant fails
// the render instead of producing an unstyled button.
func buttonFunc(name string, extra ...string) (string, error) {
	v, ok := buttonVariants[name]
	if !ok {
		return "", fmt.Errorf("unknown button variant %q", name)
	}
	return ButtonClass(v, extra...), nil
}

// ButtonClass merges the base button classes with the variant and any
// caller overrides. Later classes win on conflict.
func ButtonClass(variant ButtonVariant, extra ...string) string {
	classes := append([]string{"btn", "btn-" + string(variant)}, extra...)
	return twmerge.Merge(classes...)
}

// AlertClass maps a flash kind to its alert style.
func AlertClass(f *model.Flash) string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case model.FlashError:
		return twmerge.Merge("alert", "alert-error")
	default:
		return twmerge.Merge("alert", "alert-success")
	}
}

// PageTitle builds "<Page> | <App>" from a lower-case page key such as
// "edit entry".
func PageTitle(page, appName string) string {
	page = strings.TrimSpace(page)
	if page == "" {
		return appName
	}
	return cases.Title(language.English).String(page) + " | " + appName
}
