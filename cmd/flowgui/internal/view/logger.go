package view

import (
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/lmittmann/tint"
)

// silent is above every level a logr.Logger can emit at.
const silent = slog.Level(100)

func rewriteLogLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		level := a.Value.Any().(slog.Level)

		var levelText string
		switch {
		case level < slog.LevelInfo:
			levelText = "DEBUG"
		case level == slog.LevelInfo:
			levelText = color.GreenString("INFO")
		case level == slog.LevelWarn:
			levelText = color.YellowString("WARN")
		case level >= slog.LevelError:
			levelText = color.RedString("ERROR")
		default:
			levelText = level.String()
		}
		a.Value = slog.StringValue(levelText)
	}
	return a
}

// NewLogger returns a human-readable logger writing to w. Info logs and
// errors are shown; debug additionally shows V(1) through V(4).
func NewLogger(w io.Writer, debug, quiet, colored bool) logr.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = silent
	case debug:
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  time.TimeOnly,
		NoColor:     !colored,
		ReplaceAttr: rewriteLogLevel,
	})
	return logr.FromSlogHandler(handler)
}
