package text

import (
	"regexp"
	"strings"
	"testing"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiSeq.ReplaceAllString(s, "") }

func TestRenderKeepsCodeBlockContent(t *testing.T) {
	r := NewRenderer(true, 80)
	md := "# Answer\n\nSome `inline` text.\n\n```go\nfunc main() {\n\tprintln(\"hi\")\n}\n```\n"
	out, err := r.Render(md)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	plain := stripANSI(out)
	for _, want := range []string{"Answer", "func main()", "println"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("rendered output missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "```") {
		t.Fatal("code fence should not survive rendering")
	}
}

func TestRenderHighlightsFencedCode(t *testing.T) {
	out := NewRenderer(true, 80).MustRender("```python\ndef f():\n    return 1\n```\n")
	if !ansiSeq.MatchString(out) {
		t.Fatal("expected ANSI colour sequences in highlighted code block")
	}
}

func TestRendererRebuildsOnWidthChange(t *testing.T) {
	r := NewRenderer(false, 80)
	r.MustRender("hello")
	if r.tr == nil {
		t.Fatal("renderer should be cached after first render")
	}
	r.SetWidth(80)
	if r.tr == nil {
		t.Fatal("same width should keep the cached renderer")
	}
	r.SetWidth(40)
	if r.tr != nil {
		t.Fatal("width change should drop the cached renderer")
	}
	r.MustRender("hello")
	r.SetDark(true)
	if r.tr != nil {
		t.Fatal("theme change should drop the cached renderer")
	}
}

func TestWrapWidthFloor(t *testing.T) {
	if got := wrapWidth(0); got != minWrap {
		t.Fatalf("wrapWidth(0) = %d, want %d", got, minWrap)
	}
	if got := wrapWidth(100); got != 96 {
		t.Fatalf("wrapWidth(100) = %d, want 96", got)
	}
}

func TestHighlightJSON(t *testing.T) {
	src := PrettyJSON([]byte(`{"answer":"x","documents_used":3}`))
	if !strings.Contains(src, "\n  \"answer\"") {
		t.Fatalf("PrettyJSON did not indent: %q", src)
	}
	out := Highlight(src, "json", true)
	if stripANSI(out) != src {
		t.Fatalf("highlighting changed the text:\n%q\n%q", stripANSI(out), src)
	}
	if out == src {
		t.Fatal("expected colour codes in highlighted JSON")
	}
}

func TestPrettyJSONInvalidPassthrough(t *testing.T) {
	if got := PrettyJSON([]byte("not json")); got != "not json" {
		t.Fatalf("got %q", got)
	}
}
