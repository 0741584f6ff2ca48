package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatsMarkdown(t *testing.T) {
	p := NewParser()

	out, err := p.Parse([]byte("**hello** ~~world~~"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>hello</strong>")
	assert.Contains(t, string(out), "<del>world</del>")
}

func TestHTMLOmitsRawHTMLAndDangerousLinks(t *testing.T) {
	p := NewParser()

	out := string(p.HTML("<script>alert(1)</script>\n\n[click](javascript:alert(1))"))
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}

func TestHTMLHardWraps(t *testing.T) {
	p := NewParser()

	out := string(p.HTML("line one\nline two"))
	assert.Contains(t, out, "<br>")
}
