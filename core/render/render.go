// Package render composes verses, headings, psalm titles and their marks into
// a Markdown or HTML chapter with a trailing footnote list.
//
// Composition happens per verse in a fixed order: marks are spliced into the
// verse text, then the verse number, the poetry wrapper, psalm titles and
// headings are prepended. Verses are then joined by paragraph and chapter
// and the footnote appendix is added.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/marks"
	"github.com/v-bible/js-sdk/internal/logging"
)

// DefaultCacheSize is the number of converted fragments kept by the default
// renderer.
const DefaultCacheSize = 1024

// maxHeading is the deepest heading level; deeper levels wrap around.
const maxHeading = 6

// Format selects the output markup.
type Format int

const (
	// FormatMarkdown renders Markdown with footnote references.
	FormatMarkdown Format = iota
	// FormatHTML renders HTML with an ordered footnote list.
	FormatHTML
)

var formatNames = map[Format]string{
	FormatMarkdown: "md",
	FormatHTML:     "html",
}

// String returns the short name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts "md", "markdown" or "html", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// Renderer holds composition options. It is safe for concurrent use as long
// as its Converter is.
type Renderer struct {
	conv    Converter
	resolve *marks.ResolveOptions
	logger  *slog.Logger
	woj     wojMarkers
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConverter sets the Markdown to HTML converter used by HTML output.
func WithConverter(c Converter) Option {
	return func(r *Renderer) {
		if c != nil {
			r.conv = c
		}
	}
}

// WithResolveOptions sets how overlapping marks are split.
func WithResolveOptions(opts *marks.ResolveOptions) Option {
	return func(r *Renderer) {
		r.resolve = opts
	}
}

// WithLogger sets the logger. By default the global logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// WithWordsOfJesus wraps words of Jesus in open and close instead of <b>.
func WithWordsOfJesus(open, close string) Option {
	return func(r *Renderer) {
		r.woj = wojMarkers{open: open, close: close}
	}
}

// New returns a Renderer. Without options it converts with goldmark through
// an LRU cache and keeps the later mark whole on overlaps.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		resolve: marks.DefaultResolveOptions(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.conv == nil {
		r.conv = NewCachedConverter(NewGoldmarkConverter(), DefaultCacheSize)
	}
	return r
}

var defaultRenderer = New()

// Markdown renders doc with the default renderer.
func Markdown(doc *ir.Document) string {
	return defaultRenderer.Markdown(doc)
}

// HTML renders doc with the default renderer.
func HTML(doc *ir.Document) string {
	return defaultRenderer.HTML(doc)
}

// Render dispatches on f. Unknown formats render as Markdown.
func (r *Renderer) Render(doc *ir.Document, f Format) string {
	if f == FormatHTML {
		return r.HTML(doc)
	}
	return r.Markdown(doc)
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.GetLogger()
}

// inline converts a Markdown fragment to HTML without the wrapping paragraph.
// A failing converter leaves the fragment as it is.
func (r *Renderer) inline(s string) string {
	out, err := r.conv.Convert(s)
	if err != nil {
		r.log().Warn("markdown conversion failed", "error", err)
		return s
	}
	return StripParagraph(out)
}

func (r *Renderer) logDocument(doc *ir.Document, f Format) {
	l := r.log()
	l.Debug("rendering document",
		"format", f.String(),
		"verses", len(doc.Verses),
		"marks", len(doc.Marks),
		"headings", len(doc.Headings),
	)
	for _, m := range doc.Marks {
		if !m.Kind.IsValid() {
			l.Debug("skipping mark with unknown kind", "mark", m.ID, "kind", int(m.Kind))
		}
	}
}
