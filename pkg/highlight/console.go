package highlight

import (
	"strings"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/memo"
	"github.com/go-drift/flowgui/pkg/theme"
)

var prefixed = []theme.Category{
	theme.CategoryTrace,
	theme.CategoryDebug,
	theme.CategoryError,
	theme.CategoryWarning,
	theme.CategoryInfo,
}

// Console styles log text. From a category marker such as "[error]" to the
// end of its line, text takes that category's format; everything else uses
// the text format.
func Console(th theme.LogTheme, text string) *graphics.LayoutJob {
	job := graphics.NewLayoutJob()
	for text != "" {
		if cat, ok := markerAt(text); ok {
			end := strings.IndexByte(text, '\n')
			if end < 0 {
				end = len(text)
			}
			job.Append(text[:end], th.Format(cat))
			text = text[end:]
			continue
		}
		n := plainLen(text)
		job.Append(text[:n], th.Format(theme.CategoryText))
		text = text[n:]
	}
	return job
}

func markerAt(text string) (theme.Category, bool) {
	if text[0] != '[' {
		return theme.CategoryText, false
	}
	for _, c := range prefixed {
		if strings.HasPrefix(text, c.Prefix()) {
			return c, true
		}
	}
	return theme.CategoryText, false
}

// plainLen returns the length of the unmarked text at the start of text,
// which does not itself start with a marker.
func plainLen(text string) int {
	for i := 1; i < len(text); i++ {
		j := strings.IndexByte(text[i:], '[')
		if j < 0 {
			return len(text)
		}
		i += j
		if _, ok := markerAt(text[i:]); ok {
			return i
		}
	}
	return len(text)
}

type consoleKey struct {
	id    identity.ID
	theme theme.LogTheme
	text  string
}

// CachedConsole returns the memoized console highlighting of text drawn by
// the node with the given identity.
func CachedConsole(caches *memo.Caches, id identity.ID, th theme.LogTheme, text string) *graphics.LayoutJob {
	cache := memo.Cache(caches, "highlight.console", func(k consoleKey) *graphics.LayoutJob {
		return Console(k.theme, k.text)
	})
	return cache.Get(consoleKey{id: id, theme: th, text: text})
}
