package graphics

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontFamily selects between the two built-in font families.
type FontFamily int

const (
	FontFamilyProportional FontFamily = iota
	FontFamilyMonospace
)

// String returns a human-readable representation of the font family.
func (f FontFamily) String() string {
	switch f {
	case FontFamilyProportional:
		return "proportional"
	case FontFamilyMonospace:
		return "monospace"
	default:
		return fmt.Sprintf("FontFamily(%d)", int(f))
	}
}

// ParseFontFamily maps "monospace" and "proportional" to a FontFamily.
func ParseFontFamily(s string) (FontFamily, bool) {
	switch strings.ToLower(s) {
	case "monospace", "mono":
		return FontFamilyMonospace, true
	case "proportional":
		return FontFamilyProportional, true
	}
	return 0, false
}

// FontID names a font face by family and size.
type FontID struct {
	Family FontFamily
	Size   float64
}

// Monospace returns a monospace FontID of the given size.
func Monospace(size float64) FontID {
	return FontID{Family: FontFamilyMonospace, Size: size}
}

// Proportional returns a proportional FontID of the given size.
func Proportional(size float64) FontID {
	return FontID{Family: FontFamilyProportional, Size: size}
}

// TextFormat describes how a run of text is drawn.
// It is comparable so it can participate in cache keys.
type TextFormat struct {
	Font      FontID
	Color     Color
	Italics   bool
	Underline bool
}

// SimpleFormat returns a format with only font and color set.
func SimpleFormat(id FontID, c Color) TextFormat {
	return TextFormat{Font: id, Color: c}
}

// Section is a styled byte range of a LayoutJob's text.
type Section struct {
	Start  int
	End    int
	Format TextFormat
}

// LayoutJob is styled text ready to be laid out: the raw text plus
// contiguous formatted sections covering it.
type LayoutJob struct {
	Text     string
	Sections []Section
	// WrapWidth is the maximum line width; +Inf disables wrapping.
	WrapWidth float64
}

// NewLayoutJob returns an empty job that does not wrap.
func NewLayoutJob() *LayoutJob {
	return &LayoutJob{WrapWidth: math.Inf(1)}
}

// SimpleJob returns a job with a single section covering text.
func SimpleJob(text string, format TextFormat) *LayoutJob {
	job := NewLayoutJob()
	job.Append(text, format)
	return job
}

// Append adds text with the given format, merging with the previous
// section when the formats are equal.
func (j *LayoutJob) Append(text string, format TextFormat) {
	if text == "" {
		return
	}
	start := len(j.Text)
	j.Text += text
	if n := len(j.Sections); n > 0 && j.Sections[n-1].Format == format && j.Sections[n-1].End == start {
		j.Sections[n-1].End = len(j.Text)
		return
	}
	j.Sections = append(j.Sections, Section{Start: start, End: len(j.Text), Format: format})
}

// Run is the text and format of one section.
type Run struct {
	Text   string
	Format TextFormat
}

// Runs returns the job's sections with their text resolved.
func (j *LayoutJob) Runs() []Run {
	runs := make([]Run, 0, len(j.Sections))
	for _, s := range j.Sections {
		runs = append(runs, Run{Text: j.Text[s.Start:s.End], Format: s.Format})
	}
	return runs
}

// referenceFace is the metric source for text measurement.
var referenceFace font.Face = basicfont.Face7x13

// referenceHeight is the pixel height referenceFace is designed for.
const referenceHeight = 13.0

// Measure computes the laid-out size of a job. Glyph advances come from
// basicfont scaled to each section's font size; lines break on '\n' and,
// when WrapWidth is finite, at the wrap width.
func Measure(job *LayoutJob) Size {
	if job == nil || job.Text == "" {
		return Size{}
	}
	var (
		size       Size
		lineWidth  float64
		lineHeight float64
	)
	endLine := func() {
		if lineWidth > size.Width {
			size.Width = lineWidth
		}
		size.Height += lineHeight
		lineWidth, lineHeight = 0, 0
	}
	for _, s := range job.Sections {
		scale := s.Format.Font.Size / referenceHeight
		if scale <= 0 {
			scale = 1
		}
		glyphHeight := referenceHeight * scale
		for _, r := range job.Text[s.Start:s.End] {
			if r == '\n' {
				if lineHeight < glyphHeight {
					lineHeight = glyphHeight
				}
				endLine()
				continue
			}
			adv, ok := referenceFace.GlyphAdvance(r)
			if !ok {
				adv, _ = referenceFace.GlyphAdvance('?')
			}
			w := float64(adv) / 64 * scale
			if finite(job.WrapWidth) && lineWidth > 0 && lineWidth+w > job.WrapWidth {
				endLine()
			}
			lineWidth += w
			if lineHeight < glyphHeight {
				lineHeight = glyphHeight
			}
		}
	}
	if lineWidth > 0 || lineHeight > 0 {
		endLine()
	}
	return size
}
