package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/memo"
	"github.com/go-drift/flowgui/pkg/theme"
)

func TestHighlightUnknownLanguageFallsBack(t *testing.T) {
	var h Highlighter
	for _, th := range []theme.CodeTheme{theme.DarkCodeTheme(), theme.LightCodeTheme()} {
		job := h.Highlight(th, "let x = 1", "no-such-language")
		runs := job.Runs()
		if len(runs) != 1 {
			t.Fatalf("runs = %d, want 1", len(runs))
		}
		if runs[0].Text != "let x = 1" || runs[0].Format != th.PlainFormat() {
			t.Errorf("run = %+v, want plain", runs[0])
		}
	}
}

func TestHighlightKnownLanguagePreservesText(t *testing.T) {
	var h Highlighter
	code := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"
	for _, lang := range []string{"go", "Go", "golang"} {
		job := h.Highlight(theme.DarkCodeTheme(), code, lang)
		if job.Text != code {
			t.Fatalf("%s: text = %q, want input unchanged", lang, job.Text)
		}
		if len(job.Sections) < 2 {
			t.Errorf("%s: sections = %d, want several styled runs", lang, len(job.Sections))
		}
		end := 0
		for _, s := range job.Sections {
			if s.Start != end {
				t.Fatalf("%s: section gap at %d", lang, s.Start)
			}
			end = s.End
		}
		if end != len(code) {
			t.Errorf("%s: sections end at %d, want %d", lang, end, len(code))
		}
	}
}

func TestHighlightEmptyCode(t *testing.T) {
	var h Highlighter
	job := h.Highlight(theme.DarkCodeTheme(), "", "go")
	if job.Text != "" || len(job.Sections) != 0 {
		t.Errorf("job = %+v, want empty", job)
	}
}

func TestConsoleCategories(t *testing.T) {
	th := theme.DefaultLogTheme()
	job := Console(th, "[info] ready\nplain [error] bad\n[debug] x")

	type run struct {
		Text string
		Cat  theme.Category
	}
	want := []run{
		{"[info] ready", theme.CategoryInfo},
		{"\nplain ", theme.CategoryText},
		{"[error] bad", theme.CategoryError},
		{"\n", theme.CategoryText},
		{"[debug] x", theme.CategoryDebug},
	}
	var got []run
	for _, r := range job.Runs() {
		cat := theme.CategoryText
		for _, c := range theme.Categories() {
			if th.Format(c) == r.Format {
				cat = c
				break
			}
		}
		got = append(got, run{r.Text, cat})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleUnmatchedBracketIsText(t *testing.T) {
	th := theme.DefaultLogTheme()
	job := Console(th, "[x] [warn] é")
	runs := job.Runs()
	if len(runs) != 1 || runs[0].Format != th.Format(theme.CategoryText) {
		t.Errorf("runs = %+v, want a single text run", runs)
	}
}

func TestCachedHighlightingWithinFrame(t *testing.T) {
	caches := memo.New(nil)
	caches.NextFrame()
	th := theme.DarkCodeTheme()

	a := Code(caches, th, "x := 1", "go")
	b := Code(caches, th, "x := 1", "go")
	if a != b {
		t.Error("same key in one frame should return the identical job")
	}
	if Code(caches, theme.LightCodeTheme(), "x := 1", "go") == a {
		t.Error("a different theme is a different key")
	}

	id := identity.New(3, 0)
	c := CachedConsole(caches, id, theme.DefaultLogTheme(), "[info] a")
	if CachedConsole(caches, id, theme.DefaultLogTheme(), "[info] a") != c {
		t.Error("console highlighting should be memoized within a frame")
	}
	if CachedConsole(caches, identity.New(4, 0), theme.DefaultLogTheme(), "[info] a") == c {
		t.Error("a different node identity is a different key")
	}

	caches.NextFrame()
	caches.NextFrame()
	if Code(caches, th, "x := 1", "go") == a {
		t.Error("an entry untouched for a whole frame should be recomputed")
	}
}

func TestTokenFormatUsesPlainFont(t *testing.T) {
	var h Highlighter
	job := h.Highlight(theme.LightCodeTheme(), "// note\nx", "go")
	for _, r := range job.Runs() {
		if r.Format.Font != graphics.Monospace(14) {
			t.Errorf("run %q font = %+v", r.Text, r.Format.Font)
		}
	}
}
