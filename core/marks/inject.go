package marks

import (
	"slices"

	"github.com/v-bible/js-sdk/core/ir"
)

// LabelFunc renders the text that replaces a mark's span.
type LabelFunc func(m ir.Mark) string

// LabelSet maps each mark kind to its renderer. Kinds without an entry are
// skipped during injection.
type LabelSet map[ir.MarkKind]LabelFunc

// CheckLabels returns the known kinds that the set has no renderer for.
func CheckLabels(labels LabelSet) []ir.MarkKind {
	var missing []ir.MarkKind
	for _, k := range ir.MarkKinds {
		if _, ok := labels[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// edit records a splice already applied to the text, in original offsets.
type edit struct {
	start, end int
	delta      int
}

// Inject resolves ms and replaces each mark's span in text with its rendered
// label. Offsets are rune offsets into the original text and are clamped to
// its length, so marks past the end are appended.
//
// Marks are applied from the highest offset down. When a span mark contains
// labels that were already spliced in, its renderer receives a copy of the
// mark whose Content is the current spanned text so the nested labels survive.
func Inject(text string, ms []ir.Mark, labels LabelSet, opts *ResolveOptions) string {
	if len(ms) == 0 {
		return text
	}

	resolved := Resolve(ms, opts)
	slices.Reverse(resolved)

	out := []rune(text)
	n := len(out)
	var edits []edit

	// live maps an original offset to the current buffer. Zero-width edits at
	// p are not counted so a new label at p lands before them.
	live := func(p int) int {
		pos := p
		for _, e := range edits {
			if e.start < p && e.end <= p {
				pos += e.delta
			}
		}
		return pos
	}

	for _, m := range resolved {
		render, ok := labels[m.Kind]
		if !ok || render == nil {
			continue
		}

		a := clamp(m.StartOffset, 0, n)
		b := clamp(m.EndOffset, a, n)

		if outer, ok := enclosing(edits, a, b); ok {
			label := []rune(render(m))
			at := live(outer.start)
			out = slices.Insert(out, at, label...)
			edits = append(edits, edit{start: outer.start, end: outer.start, delta: len(label)})
			continue
		}

		for _, e := range edits {
			if e.start >= a && e.start < b && e.end > b {
				b = e.start
			}
		}

		la, lb := live(a), live(b)

		swallowed := false
		kept := edits[:0:0]
		for _, e := range edits {
			if e.start >= a && e.end <= b && e.start < b {
				swallowed = true
				continue
			}
			kept = append(kept, e)
		}

		if swallowed {
			m.Content = string(out[la:lb])
		}

		label := []rune(render(m))
		out = slices.Replace(out, la, lb, label...)
		edits = append(kept, edit{start: a, end: b, delta: len(label) - (b - a)})
	}

	return string(out)
}

// enclosing finds an applied edit that strictly contains [a, b).
func enclosing(edits []edit, a, b int) (edit, bool) {
	for _, e := range edits {
		if e.start == e.end {
			continue
		}
		if e.start <= a && a < e.end && b <= e.end && (e.start < a || b < e.end) {
			return e, true
		}
	}
	return edit{}, false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
