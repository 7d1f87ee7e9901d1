package render

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/v-bible/js-sdk/core/cache"
	"github.com/v-bible/js-sdk/core/ir"
)

// Converter turns a Markdown fragment into HTML.
type Converter interface {
	Convert(markdown string) (string, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(markdown string) (string, error)

// Convert calls f.
func (f ConverterFunc) Convert(markdown string) (string, error) {
	return f(markdown)
}

// GoldmarkConverter renders CommonMark with the GitHub extensions. Raw HTML
// in the input is passed through.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter returns a converter with GFM and unsafe HTML enabled.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Convert implements Converter.
func (c *GoldmarkConverter) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CachedConverter memoizes another converter by the BLAKE3 digest of its
// input. Verse fragments repeat often across a chapter (footnote bodies,
// psalm titles) so the hit rate is high.
type CachedConverter struct {
	inner Converter
	cache cache.Cache[string, string]
}

// NewCachedConverter wraps inner with an LRU cache of at most size entries.
// A size of 0 or less disables eviction.
func NewCachedConverter(inner Converter, size int) *CachedConverter {
	return NewBoundedCachedConverter(inner, size, 0)
}

// NewBoundedCachedConverter is NewCachedConverter with an additional limit
// on the total bytes of cached HTML. A maxBytes of 0 or less disables the
// byte limit; fragments larger than the limit are converted but not kept.
func NewBoundedCachedConverter(inner Converter, size int, maxBytes int64) *CachedConverter {
	return &CachedConverter{
		inner: inner,
		cache: cache.NewBoundedCache[string, string](cache.Config{MaxSize: size}, max(maxBytes, 0), func(html string) int64 {
			return int64(len(html))
		}),
	}
}

// Convert implements Converter.
func (c *CachedConverter) Convert(markdown string) (string, error) {
	return cache.GetOrCompute(c.cache, ir.HashString(markdown), func() (string, error) {
		return c.inner.Convert(markdown)
	})
}

// Stats reports cache hits and misses.
func (c *CachedConverter) Stats() cache.Stats {
	return c.cache.Stats()
}

var reParagraph = regexp.MustCompile(`<p>|</p>\n?`)

// StripParagraph removes paragraph tags the converter wraps around inline
// input, so the fragment can be spliced back into running text.
func StripParagraph(html string) string {
	return reParagraph.ReplaceAllString(html, "")
}
