// Package highlight turns raw text into styled layout jobs: source code via
// chroma lexers and console logs via category prefixes. Both have memoized
// entry points backed by the per-surface memo caches.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/memo"
	"github.com/go-drift/flowgui/pkg/theme"
)

var chromaStyles = map[theme.CodeStyle]string{
	theme.CodeStyleMocha:          "catppuccin-mocha",
	theme.CodeStyleEighties:       "monokai",
	theme.CodeStyleOcean:          "nord",
	theme.CodeStyleOceanLight:     "xcode",
	theme.CodeStyleGitHub:         "github",
	theme.CodeStyleSolarizedDark:  "solarized-dark",
	theme.CodeStyleSolarizedLight: "solarized-light",
}

// Highlighter tokenizes source code with chroma.
type Highlighter struct{}

// Highlight returns code styled for language, which may be a lexer name,
// alias or file extension. Unknown languages and tokenizer failures yield
// a single plain run.
func (Highlighter) Highlight(th theme.CodeTheme, code, language string) *graphics.LayoutJob {
	if job, ok := highlightTokens(th, code, language); ok {
		return job
	}
	return graphics.SimpleJob(code, th.PlainFormat())
}

func findLexer(language string) chroma.Lexer {
	if language == "" {
		return nil
	}
	if l := lexers.Get(language); l != nil {
		return l
	}
	return lexers.Match("file." + strings.TrimPrefix(language, "."))
}

func highlightTokens(th theme.CodeTheme, code, language string) (*graphics.LayoutJob, bool) {
	lexer := findLexer(language)
	if lexer == nil {
		return nil, false
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return nil, false
	}
	style := styles.Get(chromaStyles[th.Style])
	plain := th.PlainFormat()

	job := graphics.NewLayoutJob()
	rest := code
	// Lexers may append a final newline; consume exactly the input text.
	for tok := it(); tok != chroma.EOF && rest != ""; tok = it() {
		v := tok.Value
		if len(v) > len(rest) {
			v = v[:len(rest)]
		}
		if !strings.HasPrefix(rest, v) {
			return nil, false
		}
		if v == "" {
			continue
		}
		job.Append(v, tokenFormat(style, tok.Type, plain))
		rest = rest[len(v):]
	}
	if rest != "" {
		return nil, false
	}
	return job, true
}

func tokenFormat(style *chroma.Style, tt chroma.TokenType, plain graphics.TextFormat) graphics.TextFormat {
	entry := style.Get(tt)
	f := plain
	if entry.Colour.IsSet() {
		f.Color = graphics.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	f.Italics = entry.Italic == chroma.Yes
	f.Underline = entry.Underline == chroma.Yes
	return f
}

type codeKey struct {
	theme    theme.CodeTheme
	code     string
	language string
}

// Code returns the memoized highlighting of code for the current frame.
func Code(caches *memo.Caches, th theme.CodeTheme, code, language string) *graphics.LayoutJob {
	var h Highlighter
	cache := memo.Cache(caches, "highlight.code", func(k codeKey) *graphics.LayoutJob {
		return h.Highlight(k.theme, k.code, k.language)
	})
	return cache.Get(codeKey{theme: th, code: code, language: language})
}
