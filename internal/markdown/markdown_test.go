package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBody string
		wantMeta string
		hasMeta  bool
	}{
		{
			name:     "with front-matter",
			input:    "---\ntitle: Hello\ndate: 2024-03-05\n---\n\n# Hello\n\nBody text.\n",
			wantBody: "# Hello\n\nBody text.",
			wantMeta: "\ntitle: Hello\ndate: 2024-03-05\n",
			hasMeta:  true,
		},
		{
			name:     "without front-matter",
			input:    "\n# Plain\n\ntext\n",
			wantBody: "# Plain\n\ntext",
		},
		{
			name:     "leading blank lines",
			input:    "\n\n---\na: 1\n---\nbody",
			wantBody: "body",
			wantMeta: "\na: 1\n",
			hasMeta:  true,
		},
		{
			name:     "non-greedy",
			input:    "---\na: 1\n---\nintro\n\n---\n\noutro",
			wantBody: "intro\n\n---\n\noutro",
			wantMeta: "\na: 1\n",
			hasMeta:  true,
		},
		{
			name:     "rules later in the body are kept",
			input:    "intro\n\n---\n\nmiddle\n\n---\n\noutro",
			wantBody: "intro\n\n---\n\nmiddle\n\n---\n\noutro",
		},
		{
			name:     "byte order mark",
			input:    "\xEF\xBB\xBF---\na: 1\n---\nbody",
			wantBody: "body",
			wantMeta: "\na: 1\n",
			hasMeta:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, meta := StripFrontMatter([]byte(tt.input))
			assert.Equal(t, tt.wantBody, string(body))
			if tt.hasMeta {
				assert.Equal(t, tt.wantMeta, string(meta))
			} else {
				assert.Nil(t, meta)
			}
		})
	}
}

func TestParseFrontMatter(t *testing.T) {
	meta, err := ParseFrontMatter([]byte("---\ntitle: Hello\ntags: [a, b]\n---\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", meta["title"])
	assert.Equal(t, []any{"a", "b"}, meta["tags"])

	meta, err = ParseFrontMatter([]byte("no front-matter"))
	require.NoError(t, err)
	assert.Empty(t, meta)

	_, err = ParseFrontMatter([]byte("---\ntitle: [broken\n---\nbody"))
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	r := New(Options{HighlightStyle: "github"})

	out, err := r.Convert([]byte("# Title\n\nSome *text*.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<em>text</em>")
	assert.Contains(t, html, "<table>", "GFM tables are enabled")
}

func TestConvertHighlighting(t *testing.T) {
	src := []byte("```go\nfunc main() {}\n```\n")

	out, err := New(Options{HighlightStyle: "github"}).Convert(src)
	require.NoError(t, err)
	assert.Contains(t, string(out), `style="`)

	out, err = New(Options{}).Convert(src)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<code class="language-go">`)
}

func TestConvertKeepsRawHTMLUnlessSanitized(t *testing.T) {
	src := []byte("<div class=\"note\">hi</div>\n\n<script>alert(1)</script>\n")

	out, err := New(Options{}).Convert(src)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<script>")

	out, err = New(Options{Sanitize: true}).Convert(src)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.True(t, strings.Contains(string(out), "hi"))
}
