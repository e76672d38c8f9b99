package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	Render(&buf, md)
	return buf.String()
}

func TestHeadings(t *testing.T) {
	out := render(t, "# Title\n\n## Sub Heading\n\ntext")
	if !strings.Contains(out, `<h1 id="title">Title</h1>`) {
		t.Errorf("missing h1 with anchor: %s", out)
	}
	if !strings.Contains(out, `<h2 id="sub-heading">Sub Heading</h2>`) {
		t.Errorf("missing h2 with anchor: %s", out)
	}
}

func TestAnchorID(t *testing.T) {
	cases := map[string]string{
		"Hello World":         "hello-world",
		"What's New in 1.22?": "what-s-new-in-1-22",
		"  Spaces  ":          "spaces",
		"Über alles":          "ber-alles",
	}
	for in, want := range cases {
		if got := anchorID(in); got != want {
			t.Errorf("anchorID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCodeBlockEscapesHTML(t *testing.T) {
	out := render(t, "```go\nfmt.Println(\"<b>\")\n```")
	if !strings.Contains(out, `code-lang-go`) {
		t.Errorf("missing language badge: %s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;") {
		t.Errorf("code content not escaped: %s", out)
	}
	if strings.Contains(out, "<b>") {
		t.Errorf("raw html leaked from code block: %s", out)
	}
}

func TestUnorderedAndOrderedLists(t *testing.T) {
	out := render(t, "- one\n- two\n\n1. first\n2. second")
	if !strings.Contains(out, "<ul><li>one</li><li>two</li></ul>") {
		t.Errorf("bad unordered list: %s", out)
	}
	if !strings.Contains(out, "<ol><li>first</li><li>second</li></ol>") {
		t.Errorf("bad ordered list: %s", out)
	}
}

func TestTable(t *testing.T) {
	out := render(t, "| Name | Age |\n|---|---|\n| Ada | 36 |")
	if !strings.Contains(out, "<thead><tr><th>Name</th><th>Age</th></tr></thead>") {
		t.Errorf("bad table head: %s", out)
	}
	if !strings.Contains(out, "<tbody><tr><td>Ada</td><td>36</td></tr></tbody>") {
		t.Errorf("bad table body: %s", out)
	}
}

func TestInlineFormatting(t *testing.T) {
	var n int
	out := FormatInline("**bold** and *em* and `code *stays*`", &n)
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("missing bold: %s", out)
	}
	if !strings.Contains(out, "<em>em</em>") {
		t.Errorf("missing italic: %s", out)
	}
	if !strings.Contains(out, "<code>code *stays*</code>") {
		t.Errorf("inline code content was reformatted: %s", out)
	}
}

func TestLinks(t *testing.T) {
	var n int
	out := FormatInline("[site](https://example.com)^ and [bad](javascript:alert(1))", &n)
	if !strings.Contains(out, `<a href="https://example.com" target="_blank" rel="noopener noreferrer">site</a>`) {
		t.Errorf("missing external link: %s", out)
	}
	if strings.Contains(out, "javascript:") {
		t.Errorf("unsafe scheme leaked: %s", out)
	}
	if !strings.Contains(out, "bad") {
		t.Errorf("link text dropped for unsafe url: %s", out)
	}
}

func TestImagePriority(t *testing.T) {
	var n int
	first := FormatInline("![a](/a.jpg)", &n)
	second := FormatInline("![b](/b.jpg){800|600}", &n)
	if !strings.Contains(first, `fetchpriority="high"`) {
		t.Errorf("first image should be high priority: %s", first)
	}
	if !strings.Contains(second, `loading="lazy"`) {
		t.Errorf("later images should lazy load: %s", second)
	}
	if !strings.Contains(second, `width="800" height="600"`) {
		t.Errorf("dimension suffix ignored: %s", second)
	}
}

func TestSafeURL(t *testing.T) {
	cases := map[string]string{
		"/relative/path":      "/relative/path",
		"#anchor":             "#anchor",
		"https://example.com": "https://example.com",
		"mailto:a@b.c":        "mailto:a@b.c",
		"javascript:alert(1)": "",
		"data:text/html,x":    "",
		"no-scheme.com/x":     "",
		"":                    "",
	}
	for in, want := range cases {
		if got := SafeURL(in); got != want {
			t.Errorf("SafeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	md := "# Heading\n\nThis is the **first** paragraph with some `code` in it."
	got := Excerpt(md, 40)
	if strings.Contains(got, "<") {
		t.Errorf("excerpt contains markup: %s", got)
	}
	if !strings.HasPrefix(got, "Heading This is the first") {
		t.Errorf("unexpected excerpt: %s", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("long excerpt not truncated with ellipsis: %s", got)
	}
	short := Excerpt("tiny", 40)
	if short != "tiny" {
		t.Errorf("short excerpt altered: %q", short)
	}
}

func TestBlockquote(t *testing.T) {
	out := render(t, "> wisdom here")
	if !strings.Contains(out, "<blockquote>wisdom here</blockquote>") {
		t.Errorf("bad blockquote: %s", out)
	}
}
