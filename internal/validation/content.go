package validation

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SanitizeContent strips markup from user submitted diary text.
// Text nodes are kept (unescaped); HTML tags, comments and the bodies of
// script/style elements are dropped. A '<' that does not open a known
// HTML element is ordinary text: "x<y" stays "x<y".
func SanitizeContent(raw string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// An unterminated tag at EOF comes back as the raw tail.
			if skip == 0 {
				b.WriteString(html.UnescapeString(string(z.Raw())))
			}
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			src := string(z.Raw())
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == 0:
				if skip == 0 {
					b.WriteString(html.UnescapeString(src))
				}
			case isRawTextElement(a) && tt == html.StartTagToken:
				skip++
			case isRawTextElement(a) && tt == html.EndTagToken && skip > 0:
				skip--
			}
		}
	}
}

func isRawTextElement(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Iframe, atom.Noscript:
		return true
	}
	return false
}

// IsBlank reports whether s has no visible characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
