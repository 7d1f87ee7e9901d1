package render

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/marks"
)

var (
	reQuoteGap      = regexp.MustCompile(`(?m)^>\n+>`)
	reQuoteTrailing = regexp.MustCompile(`(?m)^>\n\n`)
	reBlankLines    = regexp.MustCompile(`\n{3,}`)
)

// markup holds the per-format pieces of a composition.
type markup struct {
	format       Format
	labels       marks.LabelSet
	inline       func(string) string
	poetry       func(string) string
	psalm        func(string) string
	heading      func(level int, text string) string
	chapterBreak string
}

func (r *Renderer) markdownMarkup() markup {
	return markup{
		format: FormatMarkdown,
		labels: markdownLabels(r.woj),
		inline: func(s string) string { return s },
		poetry: func(s string) string { return "\n> " + s + "\n>" },
		psalm:  func(s string) string { return "*" + s + "*" },
		heading: func(level int, text string) string {
			return "\n" + strings.Repeat("#", level) + " " + text + "\n"
		},
		chapterBreak: "\n\n---\n\n",
	}
}

func (r *Renderer) htmlMarkup() markup {
	return markup{
		format: FormatHTML,
		labels: htmlLabels(r.woj),
		inline: r.inline,
		poetry: func(s string) string { return "\n<blockquote>" + s + "</blockquote>\n" },
		psalm:  func(s string) string { return "<i>" + r.inline(s) + "</i>" },
		heading: func(level int, text string) string {
			return fmt.Sprintf("\n<h%d>%s</h%d>\n", level, text, level)
		},
		chapterBreak: "\n\n<hr>\n\n",
	}
}

// Markdown renders doc as Markdown. Footnotes and references become
// footnote references with definitions collected at the end.
func (r *Renderer) Markdown(doc *ir.Document) string {
	if doc == nil {
		doc = &ir.Document{}
	}
	r.logDocument(doc, FormatMarkdown)

	var sb strings.Builder
	sb.WriteString(r.body(doc, r.markdownMarkup()))
	sb.WriteString("\n\n")

	var notes strings.Builder
	for _, m := range appendixOrder(doc.Marks) {
		if line, ok := markdownNote(m); ok {
			notes.WriteString(line)
			notes.WriteString("\n\n")
		}
	}
	sb.WriteString(dedupeNotes(notes.String()))

	out := sb.String()
	out = reQuoteGap.ReplaceAllString(out, ">\n>")
	out = reQuoteTrailing.ReplaceAllString(out, "\n")
	out = reBlankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// HTML renders doc as HTML followed by a rule and an ordered footnote list.
func (r *Renderer) HTML(doc *ir.Document) string {
	if doc == nil {
		doc = &ir.Document{}
	}
	r.logDocument(doc, FormatHTML)

	var sb strings.Builder
	sb.WriteString(r.body(doc, r.htmlMarkup()))
	sb.WriteString("<hr>\n\n<ol>")

	var notes strings.Builder
	for _, m := range appendixOrder(doc.Marks) {
		if m.Kind != ir.MarkFootnote && m.Kind != ir.MarkReference {
			continue
		}
		if line, ok := htmlNote(m, r.inline(m.Content)); ok {
			notes.WriteString(line)
			notes.WriteString("\n\n")
		}
	}
	sb.WriteString(dedupeNotes(notes.String()))
	sb.WriteString("</ol>")

	out := strings.ReplaceAll(sb.String(), "\n</blockquote>", "</blockquote>")
	out = reBlankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// body composes every verse and joins them into paragraphs and chapters.
func (r *Renderer) body(doc *ir.Document, mu markup) string {
	var sb strings.Builder
	currPar := 0
	currChapter := ""

	for _, v := range doc.Verses {
		content := r.verse(doc, v, mu)

		chapterStart := currChapter != "" && currChapter != v.ChapterID
		if chapterStart {
			sb.WriteString(mu.chapterBreak)
		}
		currChapter = v.ChapterID

		switch {
		case v.ParagraphNumber > currPar:
			sb.WriteString("\n\n")
		case !chapterStart:
			sb.WriteString(" ")
		}
		sb.WriteString(content)
		currPar = v.ParagraphNumber
	}
	return sb.String()
}

// verse renders one verse with its number, poetry wrapper, psalm titles and
// headings.
func (r *Renderer) verse(doc *ir.Document, v ir.Verse, mu markup) string {
	ms := doc.MarksFor(ir.TargetVerse, v.ID, ir.MarkFootnote, ir.MarkReference, ir.MarkWordsOfJesus)
	// Offsets count runes of the raw text, so labels go in before conversion.
	// Raw HTML labels pass through the converter untouched.
	content := mu.inline(marks.Inject(v.Text, ms, mu.labels, r.resolve))

	// Only the first piece of a split verse, or the first verse of a
	// paragraph, carries the number.
	if v.SubVerseIndex == 0 || v.ParagraphIndex == 0 {
		content = fmt.Sprintf("<sup><b>%d</b></sup> ", v.Number) + content
	}

	if v.IsPoetry {
		content = mu.poetry(content)
	}

	if v.SubVerseIndex == 0 && v.ParagraphNumber == 0 {
		psalms := lo.Filter(doc.Psalms, func(p ir.PsalmMetadata, _ int) bool {
			return p.ChapterID == v.ChapterID
		})
		for _, p := range slices.Backward(psalms) {
			content = mu.psalm(p.Text) + "\n" + content
		}
	}

	headings := doc.HeadingsFor(v.ID)
	for _, h := range slices.Backward(headings) {
		hm := doc.MarksFor(ir.TargetHeading, h.ID, ir.MarkFootnote, ir.MarkReference)
		text := mu.inline(marks.Inject(h.Text, hm, mu.labels, r.resolve))
		content = mu.heading(headingLevel(h.Level), text) + content
	}

	return content
}

// headingLevel wraps levels past six and maps level zero to one.
func headingLevel(level int) int {
	l := level % maxHeading
	if l <= 0 {
		return 1
	}
	return l
}

// appendixOrder returns a copy of ms sorted by kind, then sort order.
func appendixOrder(ms []ir.Mark) []ir.Mark {
	out := slices.Clone(ms)
	slices.SortStableFunc(out, func(a, b ir.Mark) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.SortOrder, b.SortOrder),
		)
	})
	return out
}

// dedupeNotes drops repeated appendix entries. The same note attached to two
// split verses is listed once.
func dedupeNotes(notes string) string {
	return strings.Join(lo.Uniq(strings.Split(notes, "\n\n")), "\n\n")
}
