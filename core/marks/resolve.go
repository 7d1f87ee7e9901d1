// Package marks resolves overlapping stand-off marks and splices rendered
// labels into the text they annotate.
package marks

import (
	"cmp"
	"slices"

	"golang.org/x/exp/utf8string"

	"github.com/v-bible/js-sdk/core/ir"
)

// ResolveOptions controls how partially overlapping marks are split.
type ResolveOptions struct {
	// OverlapKeepRight keeps the later-starting mark whole and splits the
	// earlier one when true. When false the earlier mark is kept whole and the
	// later one is split instead.
	OverlapKeepRight bool
}

// DefaultResolveOptions returns the options used when none are given.
func DefaultResolveOptions() *ResolveOptions {
	return &ResolveOptions{OverlapKeepRight: true}
}

// KeepLeft returns options that keep the earlier mark of an overlapping pair whole.
func KeepLeft() *ResolveOptions {
	return &ResolveOptions{OverlapKeepRight: false}
}

// Resolve orders the marks of a single target text so they can be spliced
// sequentially. Partially overlapping pairs are split; nested and disjoint
// marks are kept as they are. The result is sorted by (start, end) and is
// always a new slice; the input is never modified.
func Resolve(ms []ir.Mark, opts *ResolveOptions) []ir.Mark {
	if opts == nil {
		opts = DefaultResolveOptions()
	}

	if len(ms) == 0 {
		return []ir.Mark{}
	}
	if len(ms) == 1 {
		return []ir.Mark{ms[0]}
	}

	sorted := slices.Clone(ms)
	slices.SortStableFunc(sorted, func(a, b ir.Mark) int {
		return cmp.Compare(b.StartOffset, a.StartOffset)
	})

	var extra []ir.Mark

	// prev has the larger (or equal) start, curr the smaller one.
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]

		switch {
		case prev.StartOffset >= curr.EndOffset:
			// disjoint
		case prev.StartOffset >= curr.StartOffset && prev.EndOffset <= curr.EndOffset:
			// prev nests inside curr
		case prev.EndOffset > curr.StartOffset:
			if opts.OverlapKeepRight {
				cut := prev.StartOffset - curr.StartOffset

				tail := curr
				tail.StartOffset = prev.StartOffset
				tail.Content = sliceRunes(curr.Content, cut, -1)
				extra = append(extra, tail)

				head := curr
				head.EndOffset = prev.StartOffset
				head.Content = sliceRunes(curr.Content, 0, cut)
				sorted[i] = head
			} else {
				cut := curr.EndOffset - prev.StartOffset

				head := prev
				head.EndOffset = curr.EndOffset
				head.Content = sliceRunes(prev.Content, 0, cut)
				extra = append(extra, head)

				rest := prev
				rest.StartOffset = curr.EndOffset
				rest.Content = sliceRunes(prev.Content, cut, -1)
				sorted[i-1] = rest
			}
		}
	}

	out := append(sorted, extra...)
	slices.SortStableFunc(out, func(a, b ir.Mark) int {
		return cmp.Or(
			cmp.Compare(a.StartOffset, b.StartOffset),
			cmp.Compare(a.EndOffset, b.EndOffset),
		)
	})
	return out
}

// sliceRunes returns s[from:to] counted in runes, clamping both bounds to the
// string. A negative to means the end of the string.
func sliceRunes(s string, from, to int) string {
	u := utf8string.NewString(s)
	n := u.RuneCount()
	if to < 0 || to > n {
		to = n
	}
	from = max(0, min(from, to))
	if from == to {
		return ""
	}
	return u.Slice(from, to)
}
